package runtime

import "fmt"

// startExec spawns an arbitrary executable with the caller-supplied
// arguments and optional working directory. This is the path for custom
// runtimes and any identifier whose prefix the dispatcher does not
// recognize.
func (m *Manager) startExec(ref Ref, executablePath string, args []string, workDir string) (int, error) {
	if executablePath == "" {
		return 0, fmt.Errorf("start %s: executable path required", ref.ID)
	}
	return m.spawnPiped(executablePath, args, workDir, executablePath)
}
