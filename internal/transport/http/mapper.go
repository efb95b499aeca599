package http

import (
	"encoding/json"

	"github.com/drawwire/drawwire-server/internal/core"
	"github.com/drawwire/drawwire-server/internal/proto"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandJoinRoom,
			Room: join.Room,
		}, nil, nil
	case proto.InboundTypeDraw:
		var draw proto.DrawData
		if err := json.Unmarshal(inbound.Data, &draw); err != nil {
			return nil, nil, err
		}
		coreDraw, protoErr := drawToCore(draw)
		if protoErr != nil {
			return nil, protoErr, nil
		}
		return &core.Command{
			Kind: core.CommandDraw,
			Draw: coreDraw,
		}, nil, nil
	case proto.InboundTypeClear:
		// Any client-supplied initiator is discarded; the relay stamps
		// the real one.
		return &core.Command{Kind: core.CommandClear}, nil, nil
	default:
		return nil, &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "unknown message type"}, nil
	}
}

// drawToCore maps the wire union onto the core one, dropping whatever
// sender the client claimed.
func drawToCore(draw proto.DrawData) (*core.Draw, *proto.Error) {
	switch draw.Kind {
	case proto.DrawKindPath:
		if len(draw.Path) == 0 {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "path is required"}
		}
		return &core.Draw{
			Kind:  core.DrawPath,
			Path:  draw.Path,
			Color: draw.Color,
			Width: draw.Width,
		}, nil
	case proto.DrawKindObject:
		if draw.Snapshot == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "snapshot is required"}
		}
		return &core.Draw{
			Kind:     core.DrawScene,
			Snapshot: draw.Snapshot,
		}, nil
	default:
		return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "unknown draw kind"}
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventSession:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventSession,
			Data: proto.EventSessionData{
				SessionID: event.SessionID,
				Room:      event.Room,
			},
		}
	case core.EventRoomJoined:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventRoomJoined,
			Data: proto.EventRoomJoinedData{
				Room: event.Room,
			},
		}
	case core.EventUserCount:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventUserCount,
			Data: proto.EventUserCountData{
				Count: event.Count,
			},
		}
	case core.EventDraw:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventDraw,
			Data:  drawFromCore(event.Draw),
		}
	case core.EventClear:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventClear,
			Data: proto.ClearData{
				Initiator: event.Initiator,
			},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func drawFromCore(draw *core.Draw) proto.DrawData {
	if draw == nil {
		return proto.DrawData{}
	}
	switch draw.Kind {
	case core.DrawPath:
		return proto.DrawData{
			Kind:   proto.DrawKindPath,
			Path:   draw.Path,
			Color:  draw.Color,
			Width:  draw.Width,
			Sender: draw.Sender,
		}
	case core.DrawScene:
		return proto.DrawData{
			Kind:     proto.DrawKindObject,
			Snapshot: draw.Snapshot,
			Sender:   draw.Sender,
		}
	default:
		return proto.DrawData{Sender: draw.Sender}
	}
}
