package stats

import (
	"sync"
	"time"
)

// Snapshot is what the API reports. Fields are copied out under the lock.
type Snapshot struct {
	Uptime         float64 `json:"uptime"`
	FPS            uint64  `json:"fps"`
	Frames         uint64  `json:"frames"`
	FrameTimeMs    float64 `json:"frame_time_ms"`
	VertexCount    int32   `json:"vertex_count"`
	ViewportWidth  int32   `json:"viewport_width"`
	ViewportHeight int32   `json:"viewport_height"`
	ProgramStatus  string  `json:"program_status"`
	WsClients      int     `json:"ws_clients"`
}

// Frame describes the frame that was just presented.
type Frame struct {
	VertexCount    int32
	ViewportWidth  int32
	ViewportHeight int32
	ProgramStatus  string
}

type Stats struct {
	mu   sync.Mutex
	snap Snapshot

	frameCounter uint64
	frameTimer   time.Time
	start        time.Time
	deltaTimer   DeltaTimer
}

func New() *Stats {
	s := &Stats{}
	s.start = time.Now()
	s.frameTimer = s.start
	return s
}

// Update is called by the render loop once per presented frame.
func (s *Stats) Update(f Frame) {
	dt := s.deltaTimer.Next()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.frameCounter++
	s.snap.Frames++
	if time.Since(s.frameTimer) > 1*time.Second {
		s.snap.FPS = s.frameCounter
		s.frameCounter = 0
		s.frameTimer = time.Now()
	}

	s.snap.Uptime = float64(time.Since(s.start).Nanoseconds()) / 1e9
	s.snap.FrameTimeMs = float64(dt.Microseconds()) / 1e3
	s.snap.VertexCount = f.VertexCount
	s.snap.ViewportWidth = f.ViewportWidth
	s.snap.ViewportHeight = f.ViewportHeight
	s.snap.ProgramStatus = f.ProgramStatus
}

func (s *Stats) SetWsClients(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.WsClients = n
}

func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snap
	if snap.Frames == 0 {
		snap.Uptime = float64(time.Since(s.start).Nanoseconds()) / 1e9
	}
	return snap
}
