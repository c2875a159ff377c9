// Command timer is a terminal countdown client. It signs in against the API,
// resolves the effective configuration from server preferences, an optional
// named preset, and command-line overrides, then drives the timer engine and
// renders each tick. Without credentials it runs on the hardcoded defaults.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"pomodo/internal/logger"
	"pomodo/internal/timer"
)

type client struct {
	baseURL string
	token   string
	http    *http.Client
}

type loginResponse struct {
	Token string `json:"token"`
}

type preferencesResponse struct {
	Preferences timer.Config `json:"preferences"`
}

type presetsResponse struct {
	Presets []struct {
		Name string `json:"name"`
		timer.Durations
	} `json:"presets"`
}

func main() {
	server := flag.String("server", "http://localhost:8280", "API base URL")
	email := flag.String("email", "", "account email (anonymous defaults when empty)")
	password := flag.String("password", "", "account password")
	presetName := flag.String("preset", "", "named preset to apply")
	work := flag.Int("work", 0, "override work duration in minutes")
	short := flag.Int("short", 0, "override short break in minutes")
	long := flag.Int("long", 0, "override long break in minutes")
	flag.Parse()

	log := logger.New("timer")

	session := timer.NewSession(func() {
		fmt.Print("\a")
	})

	if *email != "" {
		c := &client{baseURL: strings.TrimRight(*server, "/"), http: &http.Client{Timeout: 10 * time.Second}}
		if err := c.login(*email, *password); err != nil {
			log.Er("login failed", err)
			os.Exit(1)
		}

		stored, err := c.preferences()
		if err != nil {
			log.Er("failed to load preferences", err)
			os.Exit(1)
		}
		session.SetStored(stored)

		if *presetName != "" {
			durations, err := c.findPreset(*presetName)
			if err != nil {
				log.Er("failed to load preset", err)
				os.Exit(1)
			}
			session.SelectPreset(*durations)
		}
	} else if *presetName != "" {
		log.ErMsg("preset lookup requires -email")
		os.Exit(1)
	}

	if *work > 0 || *short > 0 || *long > 0 {
		effective := session.Effective()
		override := effective.Durations
		if *work > 0 {
			override.WorkDuration = *work
		}
		if *short > 0 {
			override.ShortBreak = *short
		}
		if *long > 0 {
			override.LongBreak = *long
		}
		session.SetOverride(override)
	}

	session.Machine().Stop() // reseed after configuration settles

	engine := timer.NewEngine(session, render)
	defer engine.Close()

	render(engine.Snapshot())
	fmt.Println()
	fmt.Println("Enter to start/pause, q to quit")

	stdin := bufio.NewScanner(os.Stdin)
	for stdin.Scan() {
		switch strings.TrimSpace(stdin.Text()) {
		case "q":
			return
		default:
			if engine.Snapshot().Running {
				engine.Pause()
			} else {
				engine.Start()
			}
		}
	}
}

func render(snap timer.Snapshot) {
	state := "paused "
	if snap.Running {
		state = "running"
	}
	fmt.Printf(
		"\r%-10s %s  %s  %3.0f%%  sessions:%d ",
		snap.Phase,
		state,
		timer.FormatTime(snap.TimeLeft),
		snap.Progress*100,
		snap.CompletedWorkSessions,
	)
}

func (c *client) login(email, password string) error {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}

	resp, err := c.http.Post(c.baseURL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login rejected with status %d", resp.StatusCode)
	}

	var parsed loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return err
	}
	c.token = parsed.Token
	return nil
}

func (c *client) get(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request to %s failed with status %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *client) preferences() (*timer.Config, error) {
	var parsed preferencesResponse
	if err := c.get("/api/preferences", &parsed); err != nil {
		return nil, err
	}
	return &parsed.Preferences, nil
}

func (c *client) findPreset(name string) (*timer.Durations, error) {
	var parsed presetsResponse
	if err := c.get("/api/presets", &parsed); err != nil {
		return nil, err
	}

	for _, preset := range parsed.Presets {
		if preset.Name == name {
			durations := preset.Durations
			return &durations, nil
		}
	}
	return nil, fmt.Errorf("no preset named %q", name)
}
