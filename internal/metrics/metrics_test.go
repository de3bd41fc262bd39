package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/mvaleed/personnel/internal/domain"
)

func TestResult(t *testing.T) {
	assert.Equal(t, "ok", Result(nil))
	assert.Equal(t, "validation", Result(domain.NewValidationError(domain.CodeRequired, domain.FieldUsername)))
	assert.Equal(t, "not_found", Result(domain.NewNotFoundError(domain.CodeEmployeeNotFound, domain.FieldEmployeeID)))
	assert.Equal(t, "system", Result(errors.New("boom")))
}

func TestObserveOperation(t *testing.T) {
	before := testutil.ToFloat64(operations.WithLabelValues("test_op", "duplicate"))

	ObserveOperation("test_op", domain.NewDuplicateError(domain.CodeDuplicate, domain.FieldEmail), time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(operations.WithLabelValues("test_op", "duplicate")))
}

func TestObserveHTTP(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("/test", "GET", "404"))

	ObserveHTTP("/test", "GET", 404, time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("/test", "GET", "404")))
}
