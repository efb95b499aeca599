package predict

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ResolveInterpreter picks a Python interpreter. Order: PYTHON_PATH env,
// a project-local virtualenv next to the recognizer script, then python3
// and python on PATH.
func ResolveInterpreter(script string) (string, error) {
	if p := os.Getenv("PYTHON_PATH"); p != "" {
		return p, nil
	}

	if venv := venvInterpreter(script); venv != "" {
		return venv, nil
	}

	for _, name := range []string{"python3", "python"} {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no python interpreter on PATH")
}

func venvInterpreter(script string) string {
	root := filepath.Dir(filepath.Dir(script))
	candidate := filepath.Join(root, "myenv", "bin", "python")
	if runtime.GOOS == "windows" {
		candidate = filepath.Join(root, "myenv", "Scripts", "python.exe")
	}
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}
