package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	pdfBytes = []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n")
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
)

func TestValidator_Validate(t *testing.T) {
	v := NewValidator(0, nil)

	tests := []struct {
		name   string
		file   File
		want   bool
		reason string
	}{
		{name: "pdf metadata only", file: File{ContentType: "application/pdf", Size: 1024}, want: true},
		{name: "jpg alias", file: File{ContentType: "image/jpg", Size: 2048}, want: true},
		{name: "png with bytes", file: File{ContentType: "image/png", Content: pngBytes}, want: true},
		{name: "pdf with charset param", file: File{ContentType: "application/pdf; charset=binary", Content: pdfBytes}, want: true},
		{name: "exactly 5MB", file: File{ContentType: "image/jpeg", Size: 5 * 1024 * 1024}, want: true},
		{name: "over 5MB", file: File{ContentType: "image/jpeg", Size: 5*1024*1024 + 1}, reason: ReasonTooLarge},
		{name: "word document", file: File{ContentType: "application/msword", Size: 100}, reason: ReasonUnsupportedType},
		{name: "empty", file: File{ContentType: "application/pdf"}, reason: ReasonEmpty},
		{name: "png declared as pdf", file: File{ContentType: "application/pdf", Content: pngBytes}, reason: ReasonContentMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.Validate(tt.file)
			assert.Equal(t, tt.want, res.Accepted)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}
}

func TestValidator_CustomLimits(t *testing.T) {
	v := NewValidator(10, []string{"application/pdf"})

	assert.False(t, v.Validate(File{ContentType: "image/png", Size: 5}).Accepted)
	assert.False(t, v.Validate(File{ContentType: "application/pdf", Size: 11}).Accepted)
	assert.True(t, v.Validate(File{ContentType: "application/pdf", Size: 10}).Accepted)
	assert.Equal(t, int64(10), v.MaxSize())
}
