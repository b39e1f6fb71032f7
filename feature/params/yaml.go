package params

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"stage-alts/core/storage"

	"github.com/minio/minio-go/v7"
	"gopkg.in/yaml.v3"
)

type document struct {
	Stages  []rawStage `yaml:"stages"`
	BGMSets []rawSet   `yaml:"bgm_sets"`
}

// Decode parses one YAML document.
func Decode(r io.Reader) (*Tables, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Tables{}, nil
		}
		return nil, fmt.Errorf("failed to decode params: %w", err)
	}

	t := &Tables{
		Stages:  make([]StageRow, 0, len(doc.Stages)),
		BGMSets: make([]BGMSet, 0, len(doc.BGMSets)),
	}
	for i, raw := range doc.Stages {
		row, err := raw.parse()
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
		t.Stages = append(t.Stages, row)
	}
	for i, raw := range doc.BGMSets {
		set, err := raw.parse()
		if err != nil {
			return nil, fmt.Errorf("bgm set %d: %w", i, err)
		}
		t.BGMSets = append(t.BGMSets, set)
	}
	return t, nil
}

// FileSource reads tables from one local YAML file.
type FileSource struct {
	Path string
}

// Load implements Source.
func (s FileSource) Load(ctx context.Context) (*Tables, error) {
	rc, err := storage.OpenFile(s.Path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Decode(rc)
}

// StorageSource merges every YAML object under Prefix, in listing order.
type StorageSource struct {
	Client storage.Client
	Bucket string
	Prefix string
}

func isYAML(name string) bool {
	name = strings.TrimSuffix(strings.ToLower(name), storage.Lz4Suffix)
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// Load implements Source.
func (s StorageSource) Load(ctx context.Context) (*Tables, error) {
	out := &Tables{}
	objects := s.Client.ListObjects(ctx, s.Bucket, minio.ListObjectsOptions{
		Prefix:    s.Prefix,
		Recursive: true,
	})
	for obj := range objects {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list params: %w", obj.Err)
		}
		if !isYAML(obj.Key) {
			continue
		}

		rc, err := storage.OpenObject(ctx, s.Client, s.Bucket, obj.Key)
		if err != nil {
			return nil, err
		}
		t, err := Decode(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", obj.Key, err)
		}
		out.merge(t)
	}
	return out, nil
}
