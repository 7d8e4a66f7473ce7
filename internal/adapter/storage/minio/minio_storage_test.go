package minio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKeyFromURL(t *testing.T) {
	s := &MinioStorage{folder: "spyne-car"}

	tests := []struct {
		name    string
		fileURL string
		want    string
	}{
		{
			name:    "full public url",
			fileURL: "http://localhost:9000/car-images/spyne-car/3f1c2b44-1.jpg",
			want:    "spyne-car/3f1c2b44-1.jpg",
		},
		{
			name:    "url without extension",
			fileURL: "http://localhost:9000/car-images/spyne-car/3f1c2b44",
			want:    "spyne-car/3f1c2b44",
		},
		{
			name:    "empty url",
			fileURL: "",
			want:    "",
		},
		{
			name:    "bare slash",
			fileURL: "/",
			want:    "",
		},
		{
			name:    "bare extension",
			fileURL: "http://localhost:9000/car-images/spyne-car/.jpg",
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.objectKeyFromURL(tt.fileURL))
		})
	}
}
