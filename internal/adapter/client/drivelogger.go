package client

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

const defaultQueueSize = 64

// DriveLogger ships structured log events and content records to an external
// archival endpoint (a Google Apps Script web app). Everything is
// fire-and-forget: Log and SaveContent enqueue without blocking, a single
// goroutine drains the queue, and delivery failures never reach the caller.
type DriveLogger struct {
	url     string
	token   string
	appName string
	http    *http.Client
	queue   chan map[string]any
	done    chan struct{}
}

func NewDriveLogger(url, token, appName string, queueSize int) *DriveLogger {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	d := &DriveLogger{
		url:     url,
		token:   token,
		appName: appName,
		http:    &http.Client{Timeout: 10 * time.Second},
		queue:   make(chan map[string]any, queueSize),
		done:    make(chan struct{}),
	}
	go d.drain()
	return d
}

func (d *DriveLogger) Log(level, message string, details map[string]any) {
	d.enqueue(map[string]any{
		"auth_token": d.token,
		"app_name":   d.appName,
		"level":      level,
		"message":    message,
		"details":    details,
	})
}

func (d *DriveLogger) SaveContent(contentType, title, content string) {
	d.enqueue(map[string]any{
		"auth_token":   d.token,
		"app_name":     d.appName,
		"action":       "content",
		"content_type": contentType,
		"title":        title,
		"content":      content,
	})
}

func (d *DriveLogger) enqueue(payload map[string]any) {
	if d.url == "" {
		return
	}
	select {
	case d.queue <- payload:
	default:
		// Queue full: drop rather than block the request path.
	}
}

// Close stops accepting events and waits for queued ones to be flushed.
func (d *DriveLogger) Close() {
	close(d.queue)
	<-d.done
}

func (d *DriveLogger) drain() {
	defer close(d.done)
	for payload := range d.queue {
		d.post(payload)
	}
}

func (d *DriveLogger) post(payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}
	resp, err := d.http.Post(d.url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[DRIVE-LOGGER] send failed: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("[DRIVE-LOGGER] sink responded with status %d", resp.StatusCode)
	}
}
