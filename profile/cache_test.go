package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eoss-th/linebrain/core"
)

func TestDisplayName(t *testing.T) {
	c := NewCache()
	c.Put(core.Profile{UserID: "U1", DisplayName: "สมชาย"})

	assert.Equal(t, "สมชาย! ", c.DisplayName("U1", "! "))
	assert.Equal(t, "", c.DisplayName("U-missing", "! "))
}

func TestFindByDisplayName(t *testing.T) {
	c := NewCache()
	c.Put(core.Profile{UserID: "U1", DisplayName: "สมชาย"})
	c.Put(core.Profile{UserID: "U2", DisplayName: "สมหญิง"})

	id, ok := c.FindByDisplayName("สมหญิง")
	assert.True(t, ok)
	assert.Equal(t, "U2", id)

	_, ok = c.FindByDisplayName("ไม่มีตัวตน")
	assert.False(t, ok)
}

func TestPutOverwrites(t *testing.T) {
	c := NewCache()
	c.Put(core.Profile{UserID: "U1", DisplayName: "old"})
	c.Put(core.Profile{UserID: "U1", DisplayName: "new"})

	p, ok := c.Get("U1")
	assert.True(t, ok)
	assert.Equal(t, "new", p.DisplayName)
}
