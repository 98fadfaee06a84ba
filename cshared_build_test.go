package tertest_test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

var probeExports = []string{
	"test_simple_function",
	"test_struct_by_pointer",
	"test_pointer_args",
	"test_instance_method",
	"test_static_method",
	"initialize",
}

func TestBuildProbeLibraryExportsAllSurfaces(t *testing.T) {
	requireCommand(t, "nm")

	path := buildProbeLib(t, t.TempDir())

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if info.Size() == 0 {
		t.Fatalf("empty output file: %s", path)
	}

	nmArgs := []string{path}
	if runtime.GOOS == "linux" {
		// Exported surfaces live in the dynamic symbol table.
		nmArgs = []string{"-D", path}
	}
	nmOut := runCmd(t, "nm", nmArgs...)
	for _, export := range probeExports {
		probe := export
		if runtime.GOOS == "darwin" {
			probe = "_" + export
		}
		if !strings.Contains(nmOut, probe) {
			t.Fatalf("expected exported symbol %s in %s", export, path)
		}
	}
}

// buildProbeLib builds the c-shared probe artifact for the host platform and
// returns its path. Builds that fail because cgo is unavailable skip the
// test instead of failing it.
func buildProbeLib(t *testing.T, outDir string) string {
	t.Helper()

	ext, err := sharedLibExt(runtime.GOOS)
	if err != nil {
		t.Skipf("build probe library: %v", err)
	}

	outputPath := filepath.Join(outDir, fmt.Sprintf("libtertest_%s-%s.%s", runtime.GOOS, runtime.GOARCH, ext))

	cmd := exec.Command("go", "build",
		"-buildmode=c-shared",
		"-trimpath",
		"-o", outputPath,
		"./cshared",
	)
	cmd.Env = append(os.Environ(),
		"CGO_ENABLED=1",
		"GOCACHE="+filepath.Join(os.TempDir(), "tertest-go-build-cache"),
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if strings.Contains(string(out), "cgo") || strings.Contains(string(out), "C compiler") {
			t.Skipf("build probe library: cgo unavailable: %v\n%s", err, out)
		}
		t.Fatalf("build probe library: %v\n%s", err, out)
	}

	cleanupSharedSidecars(outputPath, ext)
	return outputPath
}

func sharedLibExt(goos string) (string, error) {
	switch goos {
	case "darwin":
		return "dylib", nil
	case "linux":
		return "so", nil
	case "windows":
		return "dll", nil
	default:
		return "", fmt.Errorf("unsupported target os: %s", goos)
	}
}

func cleanupSharedSidecars(outputPath string, ext string) {
	base := strings.TrimSuffix(outputPath, "."+ext)
	_ = os.Remove(base + ".h")
	if strings.EqualFold(ext, "dll") {
		_ = os.Remove(base + ".lib")
		_ = os.Remove(base + ".exp")
		_ = os.Remove(base + ".pdb")
	}
}

func runCmd(t *testing.T, name string, args ...string) string {
	t.Helper()

	cmd := exec.Command(name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("%s %s failed: %v\n%s", name, strings.Join(args, " "), err, output)
	}
	return string(output)
}

func requireCommand(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not found in PATH", name)
	}
}
