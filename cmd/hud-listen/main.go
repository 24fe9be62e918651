// Command hud-listen connects to the gestured HUD endpoint and prints every
// feedback event it receives. Useful when building an overlay.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

type hudMessage struct {
	Type string          `json:"type"`
	Ts   time.Time       `json:"ts"`
	Data json.RawMessage `json:"data"`
}

func main() {
	var (
		wsURL = flag.String("url", "ws://127.0.0.1:7373/hud", "gestured HUD websocket URL")
		raw   = flag.Bool("raw", false, "Print messages as received")
	)
	flag.Parse()

	u, err := url.Parse(*wsURL)
	if err != nil {
		log.Fatalf("invalid websocket URL: %v", err)
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	d := websocket.Dialer{HandshakeTimeout: 5 * time.Second}

	log.Printf("connecting to %s...", u.String())
	conn, _, err := d.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer conn.Close()
	log.Printf("connected! (press Ctrl+C to exit)")

	// The daemon pings every 20s; answering pongs is automatic.
	var writeMu sync.Mutex
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPingHandler(func(data string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second))
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			messageType, message, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("websocket error: %v", err)
				}
				return
			}
			conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			if messageType != websocket.TextMessage {
				fmt.Printf("[BINARY] %d bytes\n", len(message))
				continue
			}
			if *raw {
				fmt.Println(string(message))
				continue
			}
			fmt.Println(formatMessage(message))
		}
	}()

	select {
	case <-sigc:
		log.Printf("shutting down...")
		writeMu.Lock()
		err := conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		writeMu.Unlock()
		if err != nil {
			log.Printf("error closing connection: %v", err)
		}
	case <-done:
		log.Printf("connection closed")
	}
}

// formatMessage renders one HUD envelope as a single line.
func formatMessage(message []byte) string {
	var msg hudMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		return fmt.Sprintf("[TEXT] %s", message)
	}
	stamp := msg.Ts.Local().Format("15:04:05.000")

	switch msg.Type {
	case "gesture":
		var data struct {
			Gesture string `json:"gesture"`
		}
		if err := json.Unmarshal(msg.Data, &data); err == nil {
			return fmt.Sprintf("%s [GESTURE] %s", stamp, data.Gesture)
		}
	case "haptic":
		return fmt.Sprintf("%s [HAPTIC]", stamp)
	case "hud_init":
		return fmt.Sprintf("%s [INIT] %s", stamp, msg.Data)
	}
	return fmt.Sprintf("%s [%s] %s", stamp, msg.Type, msg.Data)
}
