package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	DatabasePath string `mapstructure:"db_path" yaml:"db_path"`
	UploadsDir   string `mapstructure:"uploads_dir" yaml:"uploads_dir"`

	// Recognizer subprocess settings. An empty interpreter means resolve
	// one at startup (PYTHON_PATH env, project venv, then PATH lookup).
	PythonInterpreter string        `mapstructure:"python_interpreter" yaml:"python_interpreter"`
	PythonScript      string        `mapstructure:"python_script" yaml:"python_script"`
	PredictTimeout    time.Duration `mapstructure:"predict_timeout" yaml:"predict_timeout"`

	JWTSecret   string `mapstructure:"jwt_secret" yaml:"jwt_secret"`
	JWTIssuer   string `mapstructure:"jwt_issuer" yaml:"jwt_issuer"`
	JWTAudience string `mapstructure:"jwt_audience" yaml:"jwt_audience"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		DatabasePath:      "drawwire.db",
		UploadsDir:        "uploads",
		PythonScript:      "python/main.py",
		PredictTimeout:    30 * time.Second,
		JWTSecret:         "dev-secret-change-me",
		JWTIssuer:         "drawwire",
		JWTAudience:       "drawwire-clients",
	}
}
