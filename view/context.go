package view

import "github.com/yigger/githd/git"

// HistoryContext tells the rendering layer which history listing to show.
// Zero-valued optional fields mean "unset".
type HistoryContext struct {
	Repo          *git.Repository
	SpecifiedPath string
	Branch        string
	Author        string // author email; empty means no author filter
	Line          int    // 1-based; 0 means whole file
	AllHistory    bool
}

// FilesContext tells the rendering layer which two-sided diff to show.
// LeftRef and RightRef are never both empty on publish; an empty LeftRef is
// read by consumers as RightRef+"~" (the parent of the right side).
type FilesContext struct {
	Repo          *git.Repository
	LeftRef       string
	RightRef      string
	SpecifiedPath string
}
