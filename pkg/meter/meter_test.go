package meter

import (
	"sync"
	"testing"
	"time"

	"github.com/itohio/duraplot/pkg/sample"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	m := New(0)

	assert.NotNil(t, m)
	assert.Equal(t, DefaultWindow, m.window)
	assert.Equal(t, Reading{}, m.Reading())
}

func TestAdd_MinMaxLast(t *testing.T) {
	m := New(time.Second)

	now := time.Now()
	levels := []sample.Sample{500, 200, 900, 300}
	for i, l := range levels {
		m.Add(l, now.Add(time.Duration(i)*10*time.Millisecond))
	}

	r := m.Reading()
	assert.Equal(t, 4, r.Count)
	assert.Equal(t, sample.Sample(300), r.Last)
	assert.Equal(t, sample.Sample(200), r.Min)
	assert.Equal(t, sample.Sample(900), r.Max)
}

func TestAdd_FirstSampleSetsMinAndMax(t *testing.T) {
	m := New(time.Second)
	m.Add(700, time.Now())

	r := m.Reading()
	assert.Equal(t, sample.Sample(700), r.Min)
	assert.Equal(t, sample.Sample(700), r.Max)
	assert.Equal(t, 0.0, r.Rate, "rate needs two samples")
}

func TestAdd_Rate(t *testing.T) {
	m := New(time.Second)

	now := time.Now()
	// 100 samples per second
	for i := range 101 {
		m.Add(512, now.Add(time.Duration(i)*10*time.Millisecond))
	}

	assert.InDelta(t, 100.0, m.Reading().Rate, 0.5)
}

func TestAdd_RateWindowDropsOldSamples(t *testing.T) {
	m := New(time.Second)

	now := time.Now()
	// A slow burst followed by a fast one; only the fast one is in the window
	for i := range 5 {
		m.Add(1, now.Add(time.Duration(i)*time.Second))
	}
	base := now.Add(10 * time.Second)
	for i := range 51 {
		m.Add(1, base.Add(time.Duration(i)*20*time.Millisecond))
	}

	assert.InDelta(t, 50.0, m.Reading().Rate, 0.5)
	assert.LessOrEqual(t, len(m.times), 51)
}

func TestReset(t *testing.T) {
	m := New(time.Second)
	now := time.Now()
	m.Add(100, now)
	m.Add(900, now.Add(10*time.Millisecond))

	m.Reset(2)

	r := m.Reading()
	assert.Equal(t, Reading{Channel: 2}, r)
	assert.Empty(t, m.times)

	m.Add(400, now.Add(20*time.Millisecond))
	r = m.Reading()
	assert.Equal(t, 2, r.Channel)
	assert.Equal(t, sample.Sample(400), r.Min)
	assert.Equal(t, sample.Sample(400), r.Max)
}

func TestReading_ConcurrentAccess(t *testing.T) {
	m := New(time.Second)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		now := time.Now()
		for i := range 1000 {
			m.Add(sample.Sample(i%1024), now.Add(time.Duration(i)*time.Millisecond))
		}
	}()
	go func() {
		defer wg.Done()
		for range 1000 {
			_ = m.Reading()
		}
	}()
	wg.Wait()

	assert.Equal(t, 1000, m.Reading().Count)
}

func TestSetDetached(t *testing.T) {
	m := New(time.Second)
	now := time.Now()
	m.Add(100, now)
	m.Add(200, now.Add(10*time.Millisecond))

	m.SetDetached(true)
	r := m.Reading()
	assert.True(t, r.Detached)
	assert.Equal(t, 0.0, r.Rate)
	assert.Equal(t, 2, r.Count, "detaching keeps the trace statistics")

	m.Reset(1)
	assert.True(t, m.Reading().Detached, "reset keeps the detached flag")

	m.SetDetached(false)
	assert.False(t, m.Reading().Detached)
}
