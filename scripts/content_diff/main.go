package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"
)

type target struct {
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

var defaultTargets = []target{
	{Path: "/api/v1/content/homepage", Critical: true},
	{Path: "/api/v1/content/site-settings", Critical: true},
	{Path: "/api/v1/content/features", Critical: true},
	{Path: "/api/v1/content/pricing", Critical: true},
	{Path: "/api/v1/content/pages/about"},
	{Path: "/api/v1/content/pages/privacy"},
	{Path: "/api/v1/content/pages/terms"},
}

type comparison struct {
	Target      target
	LeftStatus  int
	RightStatus int
	OnlyLeft    []string
	OnlyRight   []string
	LeftMode    string
	RightMode   string
	Error       error
}

func (c comparison) drift() bool {
	return c.LeftStatus != c.RightStatus || len(c.OnlyLeft) > 0 || len(c.OnlyRight) > 0
}

func main() {
	var (
		leftBase    string
		rightBase   string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&leftBase, "left", "http://localhost:8080", "Base URL of the first instance (usually live mode)")
	flag.StringVar(&rightBase, "right", "http://localhost:8081", "Base URL of the second instance (usually fallback mode)")
	flag.StringVar(&targetsPath, "targets", "", "Optional JSON file with a list of {path, critical} targets")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets := defaultTargets
	if targetsPath != "" {
		loaded, err := loadTargets(targetsPath)
		if err != nil {
			log.Fatalf("failed to load targets: %v", err)
		}
		targets = loaded
	}

	client := &http.Client{Timeout: timeout}
	var (
		results  []comparison
		breaking int
		optional int
	)
	for _, t := range targets {
		res := compareTarget(client, leftBase, rightBase, t)
		if res.Error != nil || res.drift() {
			if t.Critical {
				breaking++
			} else {
				optional++
			}
		}
		results = append(results, res)
	}

	printReport(results)

	fmt.Printf("Breaking drifts: %d, Optional drifts: %d\n", breaking, optional)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var targets []target
	if err := json.Unmarshal(data, &targets); err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return targets, nil
}

type fetched struct {
	status int
	mode   string
	keys   []string
}

func compareTarget(client *http.Client, leftBase, rightBase string, tgt target) comparison {
	comp := comparison{Target: tgt}

	left, err := fetch(client, leftBase, tgt.Path)
	if err != nil {
		comp.Error = fmt.Errorf("left request failed: %w", err)
		return comp
	}
	right, err := fetch(client, rightBase, tgt.Path)
	if err != nil {
		comp.Error = fmt.Errorf("right request failed: %w", err)
		return comp
	}

	comp.LeftStatus, comp.RightStatus = left.status, right.status
	comp.LeftMode, comp.RightMode = left.mode, right.mode
	comp.OnlyLeft = difference(left.keys, right.keys)
	comp.OnlyRight = difference(right.keys, left.keys)
	return comp
}

func fetch(client *http.Client, base, path string) (fetched, error) {
	if client == nil {
		return fetched{}, errors.New("nil client")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	resp, err := client.Get(strings.TrimRight(base, "/") + path)
	if err != nil {
		return fetched{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fetched{}, fmt.Errorf("read body: %w", err)
	}
	keys, err := dataKeys(body)
	if err != nil {
		return fetched{}, err
	}
	return fetched{status: resp.StatusCode, mode: resp.Header.Get("X-Content-Mode"), keys: keys}, nil
}

// dataKeys returns the sorted top-level keys of the envelope's data object.
func dataKeys(body []byte) ([]string, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	var doc map[string]json.RawMessage
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil, nil
	}
	if err := json.Unmarshal(envelope.Data, &doc); err != nil {
		return nil, fmt.Errorf("data is not an object: %w", err)
	}
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func difference(a, b []string) []string {
	seen := make(map[string]struct{}, len(b))
	for _, k := range b {
		seen[k] = struct{}{}
	}
	var out []string
	for _, k := range a {
		if _, ok := seen[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

func printReport(results []comparison) {
	fmt.Println("Content Diff Report")
	fmt.Println("===================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if res.drift() {
			status = "DRIFT"
		}
		fmt.Printf("[%s] %s\n", status, res.Target.Path)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
			continue
		}
		fmt.Printf("  Left: %d (%s) | Right: %d (%s) | Critical: %t\n",
			res.LeftStatus, res.LeftMode, res.RightStatus, res.RightMode, res.Target.Critical)
		if len(res.OnlyLeft) > 0 {
			fmt.Printf("  Only left: %s\n", strings.Join(res.OnlyLeft, ", "))
		}
		if len(res.OnlyRight) > 0 {
			fmt.Printf("  Only right: %s\n", strings.Join(res.OnlyRight, ", "))
		}
	}
}
