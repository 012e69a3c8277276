package cli

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/swimtools/heatsheet/annotate"
	"github.com/swimtools/heatsheet/heatsheet"
	"github.com/swimtools/heatsheet/pdf"
)

var (
	fileStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	teamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
)

// PathError reports an input path that is empty or neither a file nor a
// folder. It surfaces before any document is opened.
type PathError struct {
	Path string
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return "no path given"
	}
	return fmt.Sprintf("invalid path: %s", e.Path)
}

// IsValidPath returns path when it names an existing file or folder.
func IsValidPath(path string) (string, error) {
	if path == "" {
		return "", &PathError{}
	}
	stat, err := os.Stat(path)
	if err != nil || !(stat.Mode().IsRegular() || stat.IsDir()) {
		return "", &PathError{Path: path}
	}
	return path, nil
}

// ParsePages parses a comma-separated list of zero-based page numbers. An
// empty string selects every page.
func ParsePages(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	pages := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid page filter %q", s)
		}
		pages = append(pages, n)
	}
	return pages, nil
}

// ListPDFs returns the PDF files under dir, sorted. Hidden files and
// directories are skipped; subdirectories are only entered in recursive mode.
func ListPDFs(dir string, recursive bool) ([]string, error) {
	var files []string

	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.Name()[0] == '.' || !entry.Type().IsRegular() {
				continue
			}
			if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
				files = append(files, filepath.Join(dir, entry.Name()))
			}
		}
		sort.Strings(files)
		return files, nil
	}

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}

		// Skip hidden files and directories
		if d.Name()[0] == '.' {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(strings.ToLower(path))
		if d.Type().IsRegular() && ext == ".pdf" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Output naming. File mode writes next to the input; folder mode collects
// the copies under Highlighted/<team>/.

func teamOutputPath(input, team string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "-" + team + ext
}

func batchOutputPath(input, team string) string {
	dir := filepath.Dir(input)
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(filepath.Base(input), ext)
	return filepath.Join(dir, "Highlighted", team, base+" - "+team+ext)
}

func removeOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "-removed" + ext
}

// teamCountLine reports one team's pass, naming the action that was applied.
func teamCountLine(count int, action annotate.Action, team string) string {
	return fmt.Sprintf("%3d Swims Annotated (%s) for Team: %s", count, action, team)
}

func printArgs(config *Config) {
	fmt.Println("## Command Arguments #################################################")
	fmt.Printf("input_path:%s\n", config.InputPath)
	fmt.Printf("action:%s\n", config.Action)
	fmt.Printf("pages:%s\n", config.Pages)
	fmt.Printf("output_file:%s\n", config.OutputFile)
	fmt.Printf("recursive:%v\n", config.Recursive)
	fmt.Println("######################################################################")
}

// RunAnnotate drives the annotate subcommand: it resolves the input paths,
// then runs one pass per (file, team). Library failures abort the run.
func RunAnnotate(config *Config) {
	action, err := annotate.ParseAction(config.Action)
	if err != nil {
		log.Fatalln(err)
	}
	pages, err := ParsePages(config.Pages)
	if err != nil {
		log.Fatalln(err)
	}

	printArgs(config)

	var files []string
	batch := false

	if config.InputPath == "" {
		if config.PickPaths == nil {
			log.Fatalln(&PathError{})
		}
		files, err = config.PickPaths()
		if err != nil {
			log.Fatalln(err)
		}
		if len(files) == 0 {
			return
		}
	} else {
		path, err := IsValidPath(config.InputPath)
		if err != nil {
			log.Fatalln(err)
		}
		stat, err := os.Stat(path)
		if err != nil {
			log.Fatalln(err)
		}
		if stat.IsDir() {
			batch = true
			files, err = ListPDFs(path, config.Recursive)
			if err != nil {
				log.Fatalln(err)
			}
		} else {
			files = []string{path}
		}
	}

	for _, file := range files {
		base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		fmt.Printf("For File: %s\n", fileStyle.Render(base))

		if action == annotate.Remove {
			err = removeFile(file, config.OutputFile, pages)
		} else {
			err = annotateFile(file, pages, action, batch)
		}
		if err != nil {
			log.Fatalln(err)
		}
	}
}

// annotateFile runs one annotation pass per team found in the document.
// Teams are discovered per file. Every pass opens its own document handle,
// so a team's output never carries another team's annotations.
func annotateFile(path string, pages []int, action annotate.Action, batch bool) error {
	h, err := heatsheet.Open(path)
	if err != nil {
		return err
	}
	defer h.Close()

	teams, err := h.Teams()
	if err != nil {
		return err
	}
	cuts, err := h.Cuts()
	if err != nil {
		return err
	}

	for _, team := range teams {
		out := teamOutputPath(path, team)
		if batch {
			out = batchOutputPath(path, team)
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}

		count, err := annotate.TeamPass(path, team, cuts, pages, action, out)
		if err != nil {
			return err
		}
		fmt.Println(teamCountLine(count, action, teamStyle.Render(team)))
	}
	return nil
}

// removeFile strips every annotation on the selected pages and saves a copy.
// The count is reported even when nothing was removed, so a second pass
// prints zero instead of a spurious "annotations found".
func removeFile(path, outputFile string, pages []int) error {
	doc, err := pdf.Open(path)
	if err != nil {
		return err
	}
	defer doc.Close()

	removed, err := annotate.RemoveAnnotations(doc, pages)
	if err != nil {
		return err
	}
	fmt.Printf("%3d Annotations Removed From: %s\n", removed, fileStyle.Render(filepath.Base(path)))

	out := outputFile
	if out == "" {
		out = removeOutputPath(path)
	}
	return doc.Save(out)
}

// RunTeams lists the team codes found in a document.
func RunTeams(config *Config) {
	h, err := heatsheet.Open(config.InputPath)
	if err != nil {
		log.Fatalln(err)
	}
	defer h.Close()

	teams, err := h.Teams()
	if err != nil {
		log.Fatalln(err)
	}
	for _, team := range teams {
		fmt.Println(teamStyle.Render(team))
	}
}

// RunCuts lists the qualifying cut codes declared in a document.
func RunCuts(config *Config) {
	h, err := heatsheet.Open(config.InputPath)
	if err != nil {
		log.Fatalln(err)
	}
	defer h.Close()

	cuts, err := h.Cuts()
	if err != nil {
		log.Fatalln(err)
	}
	for _, cut := range cuts {
		fmt.Println(cut)
	}
}

// RunInfo prints the document information dictionary.
func RunInfo(config *Config) {
	doc, err := pdf.Open(config.InputPath)
	if err != nil {
		log.Fatalln(err)
	}
	defer doc.Close()

	md := doc.Metadata()
	fmt.Println("## File Information ##################################################")
	fmt.Printf("File:%s\n", config.InputPath)
	fmt.Printf("Title:%s\n", md.Title)
	fmt.Printf("Author:%s\n", md.Author)
	fmt.Printf("Subject:%s\n", md.Subject)
	fmt.Printf("Creator:%s\n", md.Creator)
	fmt.Printf("Producer:%s\n", md.Producer)
	fmt.Printf("Version:%s\n", md.Version)
	fmt.Printf("Pages:%d\n", md.Pages)
	fmt.Println("######################################################################")
}
