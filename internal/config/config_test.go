package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIConfigIsPrivileged(t *testing.T) {
	conf := &APIConfig{
		OwnerEmail:  "gaba@furduncinho.com",
		AdminEmails: []string{"portaria@furduncinho.com", "bar@furduncinho.com"},
	}

	assert.True(t, conf.IsPrivileged("gaba@furduncinho.com"))
	assert.True(t, conf.IsPrivileged("GABA@Furduncinho.com"))
	assert.True(t, conf.IsPrivileged("bar@furduncinho.com"))
	assert.False(t, conf.IsPrivileged("maria@example.com"))
	assert.False(t, conf.IsPrivileged(""))

	empty := &APIConfig{}
	assert.False(t, empty.IsPrivileged("gaba@furduncinho.com"))
}
