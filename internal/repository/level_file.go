package repository

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"promptquest/internal/model"
)

// LevelPack is the on-disk YAML level file
type LevelPack struct {
	Policy *model.ThresholdPolicy `yaml:"policy,omitempty"`
	Levels []model.Level          `yaml:"levels"`
}

// FileLevelSource reads levels from a YAML level pack
type FileLevelSource struct {
	path string
}

func NewFileLevelSource(path string) *FileLevelSource {
	return &FileLevelSource{path: path}
}

// List re-reads the file on every call
func (s *FileLevelSource) List(_ context.Context) ([]model.Level, error) {
	pack, err := ReadLevelPack(s.path)
	if err != nil {
		return nil, err
	}
	return pack.Levels, nil
}

func ReadLevelPack(path string) (*LevelPack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level pack: %w", err)
	}
	var pack LevelPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parse level pack %s: %w", path, err)
	}
	return &pack, nil
}

func WriteLevelPack(path string, pack *LevelPack) error {
	data, err := yaml.Marshal(pack)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
