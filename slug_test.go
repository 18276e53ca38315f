package h2wp_test

import (
	"testing"

	"github.com/fwojciec/h2wp"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"my-first_post", "my-first_post"},
		{"sub/my_page", "sub-my_page"},
		{"blog/2020/Hello World", "blog-2020-hello-world"},
		{"Café Crème", "cafe-creme"},
		{"  --Trim Me--  ", "trim-me"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, h2wp.Slugify(tt.in))
		})
	}
}
