package compress

import (
	"compress/gzip"
	"strings"

	"github.com/gin-gonic/gin"
)

type compressWriter struct {
	gin.ResponseWriter
	zw      *gzip.Writer
	started bool
}

func newCompressWriter(w gin.ResponseWriter) *compressWriter {
	return &compressWriter{
		ResponseWriter: w,
		zw:             gzip.NewWriter(w),
	}
}

// Write marks the response as gzip on first use so bodyless redirects
// keep their headers clean.
func (c *compressWriter) Write(p []byte) (int, error) {
	if !c.started {
		c.Header().Set("Content-Encoding", "gzip")
		c.Header().Del("Content-Length")
		c.started = true
	}

	return c.zw.Write(p)
}

func (c *compressWriter) WriteString(s string) (int, error) {
	return c.Write([]byte(s))
}

func (c *compressWriter) Close() error {
	if !c.started {
		return nil
	}

	return c.zw.Close()
}

// Compress gzips response bodies for clients that accept it. Redirect
// responses pass through untouched since they carry no body.
func Compress() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.Request.Header.Get("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		cw := newCompressWriter(c.Writer)
		c.Writer = cw
		defer func() {
			_ = cw.Close()
		}()

		c.Next()
	}
}
