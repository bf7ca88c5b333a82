package app

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/yigger/githd/git"
)

// FileOpener shows a committed file by checking its blob out to a temp file
// and handing that to the user's editor.
type FileOpener struct{}

func (FileOpener) OpenCommittedFile(file git.CommittedFile) error {
	contents, err := git.FileAtRef(file)
	if err != nil {
		return err
	}

	safeRef := strings.Map(func(r rune) rune {
		if r == '/' || r == '~' || r == '^' {
			return '-'
		}
		return r
	}, file.Ref)
	name := fmt.Sprintf("%s@%s%s",
		strings.TrimSuffix(filepath.Base(file.Path), filepath.Ext(file.Path)),
		safeRef, filepath.Ext(file.Path))
	tmp := filepath.Join(os.TempDir(), name)
	if err := os.WriteFile(tmp, []byte(contents), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	c := exec.Command(editor, tmp)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}
	return nil
}
