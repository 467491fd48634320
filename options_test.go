package uniprot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOptionsDefaults(t *testing.T) {
	o := NewOptions()
	assert.GreaterOrEqual(t, o.WorkerCount(), 1)
	assert.GreaterOrEqual(t, o.ChannelCapacity(), 1)
	assert.True(t, o.InternShortStrings())
	assert.False(t, o.ExposeURLType())
	assert.NotNil(t, o.Logger())
}

func TestWithWorkerCountClampsBelowOne(t *testing.T) {
	o := NewOptions(WithWorkerCount(0))
	assert.Equal(t, 1, o.WorkerCount())

	o = NewOptions(WithWorkerCount(-5))
	assert.Equal(t, 1, o.WorkerCount())

	o = NewOptions(WithWorkerCount(6))
	assert.Equal(t, 6, o.WorkerCount())
}

func TestWithChannelCapacityOverridesDefault(t *testing.T) {
	o := NewOptions(WithWorkerCount(4), WithChannelCapacity(2))
	assert.Equal(t, 2, o.ChannelCapacity())
}

func TestWithInternShortStringsToggle(t *testing.T) {
	o := NewOptions(WithInternShortStrings(false))
	assert.False(t, o.InternShortStrings())
}

func TestWithExposeURLTypeToggle(t *testing.T) {
	o := NewOptions(WithExposeURLType(true))
	assert.True(t, o.ExposeURLType())
}

func TestDefaultChannelCapacityIsMultipleOfWorkers(t *testing.T) {
	capacity := defaultChannelCapacity(4)
	assert.GreaterOrEqual(t, capacity, 1)
	assert.Zero(t, capacity%4)
}
