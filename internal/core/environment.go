package core

import (
	"maps"
	"runtime"
)

// DefaultEnvironment returns a marker environment snapshot for the host,
// with interpreter attributes pinned to the interpreter the generated
// build targets are written for. Callers layer overrides on top via
// MergeEnvironment.
func DefaultEnvironment() map[string]string {
	env := map[string]string{
		"python_version":                 "3.11",
		"python_full_version":            "3.11.0",
		"implementation_name":            "cpython",
		"implementation_version":         "3.11.0",
		"platform_python_implementation": "CPython",
		"platform_machine":               platformMachine(),
		"extra":                          "",
	}
	switch runtime.GOOS {
	case "darwin":
		env["os_name"] = "posix"
		env["sys_platform"] = "darwin"
		env["platform_system"] = "Darwin"
	case "windows":
		env["os_name"] = "nt"
		env["sys_platform"] = "win32"
		env["platform_system"] = "Windows"
	default:
		env["os_name"] = "posix"
		env["sys_platform"] = "linux"
		env["platform_system"] = "Linux"
	}
	return env
}

// MergeEnvironment returns base with overrides layered on top. Neither
// input is mutated.
func MergeEnvironment(base map[string]string, overrides map[string]string) map[string]string {
	merged := maps.Clone(base)
	if merged == nil {
		merged = map[string]string{}
	}
	maps.Copy(merged, overrides)
	return merged
}

func platformMachine() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	default:
		return runtime.GOARCH
	}
}
