package main

import (
	"encoding/json"
	"io"

	"prepare-test/internal/events"
)

// writeTrace は監査イベントを1行1JSONで出力する
func writeTrace(w io.Writer, evs []events.Event) {
	enc := json.NewEncoder(w)
	for _, ev := range evs {
		_ = enc.Encode(ev)
	}
}
