package helpers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-report/src/logger"
)

func TestMillify(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{999, "999.0"},
		{512.25, "512.25"},
		{1000, "1.0K"},
		{1234, "1.2K"},
		{1250, "1.2K"},
		{999999, "1000.0K"},
		{1000000, "1.0M"},
		{8262203.91, "8.3M"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Millify(c.in), "Millify(%v)", c.in)
	}
}

func TestRoundPercent(t *testing.T) {
	assert.Equal(t, 23, RoundPercent(23.08))
	assert.Equal(t, 77, RoundPercent(76.92))
	assert.Equal(t, 2, RoundPercent(2.5))
	assert.Equal(t, 4, RoundPercent(3.5))
}

func TestErrorKindThroughWrapping(t *testing.T) {
	cases := []struct {
		err  error
		kind string
	}{
		{nil, ""},
		{NewDataLoadError("clean", 3, "empty", nil), "data_load"},
		{NewInconsistentGeoError("Austin", [][2]float64{{1, 2}, {3, 4}}), "inconsistent_geo"},
		{NewReferenceNotFoundError("city aggregate", "San Francisco"), "reference_not_found"},
		{NewContractViolationError("monthly", "11 buckets"), "contract_violation"},
		{NewConfigurationError("bad", nil), "configuration"},
		{NewDatabaseError("ping", errors.New("refused")), "database"},
		{NewNetworkError("get", nil), "network"},
		{errors.New("plain"), "other"},
	}
	for _, c := range cases {
		assert.Equal(t, c.kind, ErrorKind(c.err))
		if c.err != nil {
			assert.Equal(t, c.kind, ErrorKind(fmt.Errorf("wrapped: %w", c.err)))
		}
	}
}

func TestDataLoadErrorUnwrap(t *testing.T) {
	cause := errors.New("no such file")
	err := error(NewDataLoadError("raw", 0, "read failed", cause))

	var loadErr *DataLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "raw", loadErr.Table)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "load raw: read failed: no such file")
}

func TestErrorHandlerCounts(t *testing.T) {
	h := NewErrorHandler(logger.NewNopLogger())
	h.Handle(nil, "refresh")
	assert.Equal(t, 0, h.ErrorCount)

	h.Handle(NewContractViolationError("rows", "nil"), "refresh")
	h.Handle(errors.New("boom"), "refresh")
	assert.Equal(t, 2, h.ErrorCount)

	h.ResetErrorCount()
	assert.Equal(t, 0, h.ErrorCount)
}

func TestRecommendedLimitFor(t *testing.T) {
	assert.Equal(t, 12288, RecommendedLimitFor(16384))
	assert.Equal(t, 512, RecommendedLimitFor(600))
	assert.Equal(t, 256, RecommendedLimitFor(256))

	limit, err := GetRecommendedMemoryLimit()
	if err != nil {
		assert.Equal(t, MemoryLimitFloorMB, limit)
	} else {
		assert.Positive(t, limit)
	}
}
