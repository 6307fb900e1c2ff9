package main

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/scottcagno/robinhood/pkg/hash"
	"github.com/scottcagno/robinhood/pkg/rhmap"
)

// report holds the outcome of a workload run
type report struct {
	Inserted   int
	Erased     int
	Len        int
	Cap        int
	Rebuilds   int
	MaxProbe   int
	LoadFactor float64
	Elapsed    time.Duration
}

// run inserts cfg.Keys shuffled keys, erases every cfg.EraseEvery'th of
// them, and then verifies lookups and iteration order against what it
// expects to be left
func run(cfg config, logger *zap.Logger) (report, error) {
	var rep report
	var h hash.Func[string]
	if cfg.Hasher == "constant" {
		h = hash.Constant[string](0)
	}
	m := rhmap.NewWithHasher[string, int](h,
		rhmap.WithGrowth(cfg.Growth.Threshold, cfg.Growth.Multiplier, cfg.Growth.Offset),
		rhmap.WithCapacity(cfg.Capacity),
		rhmap.WithLogger(logger.Named("rhmap")))

	rng := rand.New(rand.NewSource(cfg.Seed))
	order := rng.Perm(cfg.Keys)
	start := time.Now()

	logger.Info("inserting", zap.Int("keys", cfg.Keys), zap.String("hasher", cfg.Hasher))
	for _, n := range order {
		if !m.Insert(key(n), n) {
			return rep, errors.Newf("key %d was reported as a duplicate", n)
		}
		rep.Inserted++
	}

	if cfg.EraseEvery > 0 {
		logger.Info("erasing", zap.Int("every", cfg.EraseEvery))
		for i, n := range order {
			if i%cfg.EraseEvery == 0 {
				if !m.Erase(key(n)) {
					return rep, errors.Newf("key %d was not erased", n)
				}
				rep.Erased++
			}
		}
	}

	logger.Info("verifying", zap.Int("len", m.Len()))
	if err := verify(m, order, cfg.EraseEvery); err != nil {
		return rep, err
	}

	rep.Elapsed = time.Since(start)
	rep.Len = m.Len()
	rep.Cap = m.Cap()
	rep.Rebuilds = m.Rebuilds()
	rep.MaxProbe = m.MaxProbeDistance()
	rep.LoadFactor = m.LoadFactor()
	return rep, nil
}

func verify(m *rhmap.Map[string, int], order []int, eraseEvery int) error {
	erased := func(i int) bool {
		return eraseEvery > 0 && i%eraseEvery == 0
	}
	e := m.Front()
	for i, n := range order {
		v, err := m.At(key(n))
		if erased(i) {
			if !errors.Is(err, rhmap.ErrKeyNotFound) {
				return errors.Newf("erased key %d is still present", n)
			}
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "verifying key %d", n)
		}
		if v != n {
			return errors.Newf("key %d has value %d", n, v)
		}
		if e == nil || e.Key() != key(n) {
			return errors.Newf("key %d is out of insertion order", n)
		}
		e = e.Next()
	}
	if e != nil {
		return errors.Newf("unexpected trailing entry %q", e.Key())
	}
	return nil
}

func key(n int) string {
	return "key-" + strconv.Itoa(n)
}
