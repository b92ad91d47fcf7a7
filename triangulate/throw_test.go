package triangulate

import (
	"testing"

	"github.com/osuushi/navmesh/geom"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestHandleTriangulatePanicRecover(t *testing.T) {
	testFn := func(shouldThrow, shouldThrowInvalid, shouldPanic bool) (err error) {
		defer func() {
			recoveredErr := HandleTriangulatePanicRecover(recover())
			if recoveredErr != nil {
				err = recoveredErr
			}
		}()

		if shouldThrow {
			fatalf("kaboom!")
		}

		if shouldThrowInvalid {
			invalidf("hole %d is bad", 3)
		}

		if shouldPanic {
			panic("true panic")
		}

		return nil
	}

	t.Run("with throw", func(t *testing.T) {
		err := testFn(true, false, false)
		assert.EqualError(t, err, "kaboom!")
	})

	t.Run("with invalid geometry", func(t *testing.T) {
		err := testFn(false, true, false)
		assert.EqualError(t, err, "hole 3 is bad: invalid geometry")
		assert.True(t, errors.Is(err, geom.ErrInvalidGeometry))
	})

	t.Run("with real panic", func(t *testing.T) {
		assert.Panics(t, func() {
			testFn(false, false, true)
		})
	})

	t.Run("with runtime error", func(t *testing.T) {
		assert.Panics(t, func() {
			defer func() {
				HandleTriangulatePanicRecover(recover())
			}()
			var cycle *Cycle
			cycle.Len()
		})
	})

	t.Run("no error", func(t *testing.T) {
		err := testFn(false, false, false)
		assert.NoError(t, err)
	})
}
