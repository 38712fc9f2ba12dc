package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindUserConfig(t *testing.T) {
	type testCase struct {
		name string
		args []string
		env  string
		want string
	}

	cases := []testCase{
		{name: "equals form", args: []string{"generate", "--config=nav.yaml"}, want: "nav.yaml"},
		{name: "separate value", args: []string{"--config", "nav.toml", "check"}, want: "nav.toml"},
		{name: "flag without value", args: []string{"--config"}, env: "", want: ""},
		{name: "environment fallback", args: []string{"generate"}, env: "env.json", want: "env.json"},
		{name: "flag beats environment", args: []string{"--config=flag.yaml"}, env: "env.json", want: "flag.yaml"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("NAVGEN_CONFIG", tc.env)
			assert.Equal(t, tc.want, findUserConfig(tc.args))
		})
	}
}
