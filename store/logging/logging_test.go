package logging

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/gitpan/File-DigestStore/store/mem"
	"github.com/gitpan/File-DigestStore/testutil"
)

func TestStore(t *testing.T) {
	old := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(old)

	data := []byte("mares eat oats and does eat oats and little lambs eat ivy")
	testutil.ReadWrite(context.Background(), t, New(mem.New()), data)
}
