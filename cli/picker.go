package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var pickerNumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // cyan

// TerminalPicker returns an interactive picker over the PDF files under dir.
// It is the default PickPaths capability wired in by main; other front ends
// inject their own.
func TerminalPicker(dir string) func() ([]string, error) {
	return func() ([]string, error) {
		files, err := ListPDFs(dir, false)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no PDF files found in %s", dir)
		}

		for i, file := range files {
			fmt.Printf("%s %s\n",
				pickerNumStyle.Render(fmt.Sprintf("[%d]", i+1)),
				filepath.Base(file))
		}
		fmt.Print("Select files (e.g. 1,3) or press Enter to cancel: ")

		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return nil, nil
		}

		var picked []string
		for _, part := range strings.Split(line, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || n < 1 || n > len(files) {
				return nil, fmt.Errorf("invalid selection %q", part)
			}
			picked = append(picked, files[n-1])
		}
		return picked, nil
	}
}
