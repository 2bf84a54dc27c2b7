package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sourcedupays/terrain-api/pkg/textutil"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "creme brulee", textutil.Fold("Crème Brûlée"))
	assert.Equal(t, "douala marche central", textutil.Fold("Douala Marché Central"))
	assert.Equal(t, "nescafe", textutil.Fold("NESCAFÉ"))
	assert.Equal(t, "", textutil.Fold(""))
}
