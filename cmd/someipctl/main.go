// someipctl is a one-shot CLI for exercising the SOME/IP and Service
// Discovery codecs: encode/decode a header, build a minimal SD entry,
// or fire an already-encoded frame at a UDP target. It holds no
// session state and performs no retries.
package main

import (
	"github.com/dantte-lp/go-someip/cmd/someipctl/commands"
)

func main() {
	commands.Execute()
}
