package portfolio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Project is a portfolio entry loaded from the projects data file.
type Project struct {
	Name    string   `yaml:"name"`
	Summary string   `yaml:"summary"`
	URL     string   `yaml:"url"`
	Repo    string   `yaml:"repo"`
	Stack   []string `yaml:"stack"`
	Year    int      `yaml:"year"`
}

// LoadProjects reads portfolio projects from a YAML file and returns
// them newest first. A missing file is not an error: a site without a
// projects page simply renders none.
func LoadProjects(path string) ([]Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var doc struct {
		Projects []Project `yaml:"projects"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for i, p := range doc.Projects {
		if p.Name == "" {
			return nil, fmt.Errorf("%s: project %d has no name", path, i+1)
		}
	}

	sort.SliceStable(doc.Projects, func(i, j int) bool {
		return doc.Projects[i].Year > doc.Projects[j].Year
	})
	return doc.Projects, nil
}
