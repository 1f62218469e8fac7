package main

import (
	"fmt"
	"io"
	"os"

	"github.com/caio/go-bitree"
	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// op is one step of a script. Only the fields relevant to Op are read.
type op[T bitree.Number] struct {
	Op    string `yaml:"op"`
	Index int    `yaml:"index,omitempty"`
	Left  int    `yaml:"left,omitempty"`
	Right int    `yaml:"right,omitempty"`
	Value T      `yaml:"value,omitempty"`
}

func (o op[T]) String() string {
	switch o.Op {
	case "update", "set":
		return fmt.Sprintf("%s(%d, %v)", o.Op, o.Index, o.Value)
	case "range":
		return fmt.Sprintf("range(%d, %d)", o.Left, o.Right)
	case "search":
		return fmt.Sprintf("search(%v)", o.Value)
	case "total":
		return "total()"
	default:
		return fmt.Sprintf("%s(%d)", o.Op, o.Index)
	}
}

type script[T bitree.Number] struct {
	Values []T     `yaml:"values"`
	Ops    []op[T] `yaml:"ops"`
}

func loadScript[T bitree.Number](path string) (*script[T], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read script")
	}

	s := &script[T]{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrapf(err, "could not parse script %s", path)
	}
	return s, nil
}

func runScript[T bitree.Number](path string, w io.Writer) error {
	s, err := loadScript[T](path)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"path":   path,
		"values": len(s.Values),
		"ops":    len(s.Ops),
	}).Debug("Loaded script")

	return s.execute(w)
}

// execute applies every op in order to a tree built from the script
// values, printing the result of each query. It stops at the first
// failing op; the ops before it stay applied.
func (s *script[T]) execute(w io.Writer) error {
	tree := bitree.From(s.Values...)

	for i, o := range s.Ops {
		var (
			result interface{}
			err    error
		)
		switch o.Op {
		case "update":
			err = tree.Update(o.Index, o.Value)
		case "set":
			err = tree.UpdateTo(o.Index, o.Value)
		case "query":
			result, err = tree.Query(o.Index)
		case "get":
			result, err = tree.Get(o.Index)
		case "range":
			result, err = tree.Range(o.Left, o.Right)
		case "total":
			result = tree.Total()
		case "search":
			result = tree.Search(o.Value)
		default:
			err = errors.Errorf("unknown op %q", o.Op)
		}
		if err != nil {
			return errors.Wrapf(err, "op %d: %s", i, o)
		}

		if result == nil {
			log.WithField("op", o.String()).Debug("Applied update")
			continue
		}
		if _, err := fmt.Fprintf(w, "%s = %v\n", o, result); err != nil {
			return err
		}
	}
	return nil
}
