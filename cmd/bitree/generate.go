package main

import (
	"io"

	"github.com/go-yaml/yaml"
	"github.com/leesper/go_rng"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type generateConfig struct {
	length int
	ops    int
	seed   int64
	dist   string
	max    int64
	lambda float64
}

var opKinds = []string{"update", "set", "query", "get", "range", "total", "search"}

func (cfg generateConfig) values() (func() int64, error) {
	switch cfg.dist {
	case "uniform":
		if cfg.max < 1 {
			return nil, errors.New("max must be >= 1")
		}
		gen := rng.NewUniformGenerator(cfg.seed)
		return func() int64 { return gen.Int64n(cfg.max) }, nil
	case "poisson":
		if cfg.lambda <= 0 {
			return nil, errors.New("lambda must be > 0")
		}
		gen := rng.NewPoissonGenerator(cfg.seed)
		return func() int64 { return gen.Poisson(cfg.lambda) }, nil
	default:
		return nil, errors.Errorf("unknown distribution %s", cfg.dist)
	}
}

// generate builds a random script whose ops only use valid indices,
// so running it never fails.
func generate(cfg generateConfig) (*script[int64], error) {
	if cfg.length < 1 {
		return nil, errors.New("length must be >= 1")
	}
	if cfg.ops < 0 {
		return nil, errors.New("ops must be >= 0")
	}

	next, err := cfg.values()
	if err != nil {
		return nil, err
	}
	// Op kinds and indices come from their own stream so that the
	// values do not depend on the shape of the ops.
	pick := rng.NewUniformGenerator(cfg.seed + 1)
	index := func(n int) int { return int(pick.Int64n(int64(n))) }

	s := &script[int64]{Values: make([]int64, cfg.length)}
	var total int64
	for i := range s.Values {
		s.Values[i] = next()
		total += s.Values[i]
	}

	for i := 0; i < cfg.ops; i++ {
		o := op[int64]{Op: opKinds[index(len(opKinds))]}
		switch o.Op {
		case "update", "set":
			o.Index = index(cfg.length)
			o.Value = next()
		case "query":
			o.Index = index(cfg.length + 1)
		case "get":
			o.Index = index(cfg.length)
		case "range":
			o.Left = index(cfg.length)
			o.Right = o.Left + index(cfg.length-o.Left)
		case "search":
			o.Value = pick.Int64n(total + 1)
		}
		s.Ops = append(s.Ops, o)
	}
	return s, nil
}

func writeGenerated(cfg generateConfig, w io.Writer) error {
	s, err := generate(cfg)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"length": cfg.length,
		"ops":    cfg.ops,
		"dist":   cfg.dist,
		"seed":   cfg.seed,
	}).Debug("Generated script")

	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "could not encode script")
	}
	_, err = w.Write(data)
	return err
}
