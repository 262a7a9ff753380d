package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setSeq(t *testing.T, seq string) {
	t.Helper()
	old := Conf
	t.Cleanup(func() { Conf = old })
	Conf = Input{Seq: seq}
	initSeqRange()
}

func TestSeqRangeSingle(t *testing.T) {
	setSeq(t, "5")
	assert.Equal(t, 5, Conf.SeqStart)
	assert.Equal(t, 5, Conf.SeqEnd)
}

func TestSeqRangePair(t *testing.T) {
	setSeq(t, "3:10")
	assert.Equal(t, 3, Conf.SeqStart)
	assert.Equal(t, 10, Conf.SeqEnd)
}

func TestPageRangeUnset(t *testing.T) {
	setSeq(t, "")
	for _, index := range []int{0, 5, 99} {
		assert.True(t, PageRange(index, 100))
	}
}

func TestPageRangeBounded(t *testing.T) {
	setSeq(t, "3:10")
	assert.False(t, PageRange(0, 100))
	assert.False(t, PageRange(1, 100))
	assert.True(t, PageRange(2, 100))
	assert.True(t, PageRange(9, 100))
	assert.False(t, PageRange(10, 100))
}

func TestPageRangeNegativeEnd(t *testing.T) {
	// 5:-2 keeps pages 5.. up to two before the end.
	setSeq(t, "5:-2")
	assert.False(t, PageRange(3, 10))
	assert.True(t, PageRange(4, 10))
	assert.True(t, PageRange(7, 10))
	assert.False(t, PageRange(8, 10))
	assert.False(t, PageRange(9, 10))
}
