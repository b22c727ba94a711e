package queue

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/quillpress/blog-api/internal/metrics"
)

const channelBuffer = 256

var ErrPoolStopped = errors.New("hash pool stopped")

// Hasher is the CPU-bound work the pool runs.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

type jobKind int

const (
	jobHash jobKind = iota
	jobVerify
)

type hashJob struct {
	kind      jobKind
	plaintext string
	hash      string
	reply     chan hashResult
}

type hashResult struct {
	hash string
	ok   bool
	err  error
}

// HashPool runs password hashing on a fixed set of workers so bcrypt never
// occupies more than numWorkers cores, whatever the request concurrency.
// Each caller waits only on its own reply.
type HashPool struct {
	jobs    chan hashJob
	hasher  Hasher
	workers int
	log     zerolog.Logger

	stopped  chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewHashPool creates a HashPool with numWorkers workers.
// If numWorkers <= 0, runtime.NumCPU() is used.
func NewHashPool(numWorkers int, hasher Hasher, log zerolog.Logger) *HashPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &HashPool{
		jobs:    make(chan hashJob, channelBuffer),
		hasher:  hasher,
		workers: numWorkers,
		log:     log,
		stopped: make(chan struct{}),
	}
}

// Start launches the workers. They stop when ctx is cancelled; pending and
// later submissions then fail with ErrPoolStopped.
func (p *HashPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.runWorker(ctx, i)
	}
	go func() {
		<-ctx.Done()
		p.stopOnce.Do(func() { close(p.stopped) })
	}()
	p.log.Info().Int("workers", p.workers).Msg("hash pool started")
}

// Wait blocks until every worker has exited.
func (p *HashPool) Wait() {
	p.wg.Wait()
}

// Hash hashes plaintext on a worker.
func (p *HashPool) Hash(ctx context.Context, plaintext string) (string, error) {
	res, err := p.submit(ctx, hashJob{kind: jobHash, plaintext: plaintext})
	if err != nil {
		return "", err
	}
	return res.hash, res.err
}

// Verify checks plaintext against hash on a worker. A cancelled request or a
// stopped pool counts as a mismatch.
func (p *HashPool) Verify(ctx context.Context, plaintext, hash string) bool {
	res, err := p.submit(ctx, hashJob{kind: jobVerify, plaintext: plaintext, hash: hash})
	if err != nil {
		p.log.Warn().Err(err).Msg("password verification not completed")
		return false
	}
	return res.ok
}

func (p *HashPool) submit(ctx context.Context, job hashJob) (hashResult, error) {
	job.reply = make(chan hashResult, 1)

	select {
	case p.jobs <- job:
		metrics.HashQueueDepth.Set(float64(len(p.jobs)))
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	case <-p.stopped:
		return hashResult{}, ErrPoolStopped
	}

	select {
	case res := <-job.reply:
		return res, nil
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	case <-p.stopped:
		return hashResult{}, ErrPoolStopped
	}
}

func (p *HashPool) runWorker(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-p.jobs:
			metrics.HashQueueDepth.Set(float64(len(p.jobs)))
			job.reply <- p.process(job, id)
		}
	}
}

func (p *HashPool) process(job hashJob, id int) hashResult {
	start := time.Now()
	switch job.kind {
	case jobHash:
		hash, err := p.hasher.Hash(job.plaintext)
		metrics.HashDuration.WithLabelValues("hash").Observe(time.Since(start).Seconds())
		if err != nil {
			p.log.Error().Err(err).Int("worker_id", id).Msg("password hashing failed")
		}
		return hashResult{hash: hash, err: err}
	default:
		ok := p.hasher.Verify(job.plaintext, job.hash)
		metrics.HashDuration.WithLabelValues("verify").Observe(time.Since(start).Seconds())
		return hashResult{ok: ok}
	}
}
