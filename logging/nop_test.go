package logging

import (
	"testing"

	general_i "github.com/beka-birhanu/vinom-common/interfaces/general"
	"github.com/stretchr/testify/assert"
)

func TestNopDiscards(t *testing.T) {
	var l general_i.Logger = Nop{}
	assert.NotPanics(t, func() {
		l.Info("info")
		l.Warning("warning")
		l.Error("error")
	})
}
