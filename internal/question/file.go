package question

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

func readYamlFile[T any](path string) (T, error) {
	var result T

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&result); err != nil {
		return result, fmt.Errorf("yaml.NewDecoder().Decode() > %w", err)
	}
	return result, nil
}

func writeYamlFile[T any](path string, data T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	return yaml.NewEncoder(file).Encode(data)
}

// loadSubjectFiles reads every .yml file in dir and returns the parsed
// contents keyed by the file's basename, which is the subject name.
func loadSubjectFiles(dir string) (map[string]SubjectFile, error) {
	filesMap := make(map[string]SubjectFile)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".yml" {
			return nil
		}

		contents, err := readYamlFile[SubjectFile](path)
		if err != nil {
			return fmt.Errorf("readYamlFile(%s) > %w", path, err)
		}

		basename := filepath.Base(path)
		subject := basename[:len(basename)-len(filepath.Ext(basename))]
		filesMap[subject] = contents
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("filepath.Walk(%s) > %w", dir, err)
	}

	return filesMap, nil
}

func sortedSubjects(filesMap map[string]SubjectFile) []string {
	subjects := make([]string, 0, len(filesMap))
	for subject := range filesMap {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	return subjects
}
