package recorder

import (
	"time"

	"demoreel/internal/config"
)

// Clip narrates (optionally) and then captures frames for Duration.
type Clip struct {
	Narration string
	Duration  time.Duration
}

// Action is an external command run between clips. Its failure never stops
// the recording.
type Action struct {
	// Name identifies the step in logs and outcomes.
	Name    string
	Argv    []string
	Dir     string
	Timeout time.Duration
	// WaitReady polls the health URL after the action when readiness
	// polling is enabled.
	WaitReady bool
}

// Step is exactly one of a clip or an action.
type Step struct {
	Clip   *Clip
	Action *Action
}

// Segment is a numbered, titled group of steps.
type Segment struct {
	Number int
	Title  string
	Steps  []Step
}

// Duration sums the capture time of the segment's clips.
func (s Segment) Duration() time.Duration {
	var total time.Duration
	for _, step := range s.Steps {
		if step.Clip != nil {
			total += step.Clip.Duration
		}
	}
	return total
}

// Script is the ordered list of segments a Recorder plays.
type Script []Segment

// Duration returns the total capture time of the script.
func (s Script) Duration() time.Duration {
	var total time.Duration
	for _, seg := range s {
		total += seg.Duration()
	}
	return total
}

// Frames returns how many frames the script captures at fps.
func (s Script) Frames(fps int) int {
	total := 0
	for _, seg := range s {
		for _, step := range seg.Steps {
			if step.Clip != nil {
				total += FramesFor(step.Clip.Duration, fps)
			}
		}
	}
	return total
}

// FramesFor truncates duration*fps to a whole frame count.
func FramesFor(d time.Duration, fps int) int {
	if fps <= 0 || d <= 0 {
		return 0
	}
	return int(d.Seconds() * float64(fps))
}

// OutlineEntry summarizes one segment for checklists and plans.
type OutlineEntry struct {
	Number   int
	Title    string
	Duration time.Duration
}

const (
	narrationIntro = "Hello, I'm Pavani. Today I'm demonstrating the Multi-Tenant SaaS Platform. This is a production-ready application with Docker, Node.js, React, and PostgreSQL. It features complete multi-tenancy, authentication, and 19 API endpoints. Let me show you how the entire system works."

	narrationArchitecture = "The application has three Docker containers: Database on port 5432, Backend API on port 5000, and React Frontend on port 3000. All three are managed by Docker Compose. Let me show the docker-compose configuration."

	narrationStartup = "Now let me start the entire application with Docker Compose. One command will start all three services."

	narrationStarting = "Docker is now pulling images, building containers, and starting all three services. This takes about 30 seconds. Let me verify everything is running."

	narrationHealth = "Perfect! All three containers are now running. Let me test the health check endpoint to verify the backend is operational."

	narrationHealthy = "Excellent! The backend is responding with a healthy status. The API is fully operational."

	narrationAPI = "Now let me test API endpoints. I'll register a new tenant, which demonstrates the multi-tenancy architecture."

	narrationTenant = "The API validates the input, creates the tenant, and returns a unique ID. This is how multi-tenancy works - each tenant is isolated with their own data."

	narrationConclusion = "This demonstrates the complete Multi-Tenant SaaS Platform with Docker containerization, coordinated services, functional APIs, and scalable architecture. The application can be deployed anywhere Docker runs. Thank you for watching!"
)

// Action names used by the default script.
const (
	ActionCompose = "docker-compose"
	ActionHealth  = "curl"
)

func clip(narration string, seconds int) Step {
	return Step{Clip: &Clip{Narration: narration, Duration: time.Duration(seconds) * time.Second}}
}

// DefaultScript returns the six-segment SaaS platform demo. Only the action
// commands depend on cfg; titles, narration and timing are fixed.
func DefaultScript(cfg *config.Config) Script {
	compose := &Action{
		Name:      ActionCompose,
		Argv:      []string{cfg.DockerComposeBinary(), "up", "-d"},
		Dir:       cfg.Recorder.ComposeDir,
		Timeout:   cfg.Recorder.ComposeTimeout(),
		WaitReady: true,
	}
	health := &Action{
		Name:    ActionHealth,
		Argv:    []string{cfg.CurlBinary(), cfg.Recorder.HealthURL},
		Timeout: cfg.Recorder.HealthTimeout(),
	}

	return Script{
		{Number: 1, Title: "Introduction", Steps: []Step{
			clip(narrationIntro, 30),
		}},
		{Number: 2, Title: "Architecture & Docker Setup", Steps: []Step{
			clip(narrationArchitecture, 60),
		}},
		{Number: 3, Title: "Docker Startup", Steps: []Step{
			clip(narrationStartup, 20),
			{Action: compose},
			clip(narrationStarting, 70),
		}},
		{Number: 4, Title: "Health Check", Steps: []Step{
			clip(narrationHealth, 20),
			{Action: health},
			clip(narrationHealthy, 40),
		}},
		{Number: 5, Title: "API Testing", Steps: []Step{
			clip(narrationAPI, 30),
			clip(narrationTenant, 60),
		}},
		{Number: 6, Title: "Conclusion", Steps: []Step{
			clip(narrationConclusion, 30),
		}},
	}
}

// Outline returns the numbered titles and durations of the default script.
func Outline() []OutlineEntry {
	cfg := config.Default()
	script := DefaultScript(&cfg)
	entries := make([]OutlineEntry, 0, len(script))
	for _, seg := range script {
		entries = append(entries, OutlineEntry{Number: seg.Number, Title: seg.Title, Duration: seg.Duration()})
	}
	return entries
}
