package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-toolcards/internal/config"
	"github.com/alnah/go-toolcards/internal/fileutil"
	"github.com/alnah/go-toolcards/internal/pipeline"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"`
	Config   configInfo `json:"config"`
	Files    filesInfo  `json:"files"`
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// configInfo tells which configuration the other commands would use.
type configInfo struct {
	Source string `json:"source"` // file path, or "defaults"
}

// filesInfo holds the catalog and page checks.
type filesInfo struct {
	Input          string `json:"input"`
	InputFound     bool   `json:"input_found"`
	Output         string `json:"output"`
	OutputFound    bool   `json:"output_found"`
	NavAnchors     int    `json:"nav_anchors"`
	SectionAnchors int    `json:"section_anchors"`
	EndMarker      bool   `json:"end_marker"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctor executes the doctor command. Warnings do not fail it.
func runDoctor(_ context.Context, args []string, env *Environment) error {
	flags := &doctorFlags{}
	if _, err := parseFlags(buildDoctorFlagSet(flags), args); err != nil {
		return err
	}

	result := diagnose(flags.common.config, env.Getenv)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return fmt.Errorf("doctor found %d error(s)", len(result.Errors))
	}
	return nil
}

// diagnose performs all diagnostic checks. The config is resolved the way
// the other commands resolve it, environment overrides included.
func diagnose(configName string, getenv func(string) string) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	vars := loadEnvConfig(getenv)
	if configName == "" {
		configName = vars.ConfigPath
	}
	cfg := checkConfig(result, configName)
	applyEnvConfig(vars, cfg)
	checkFiles(result, cfg)
	checkChrome(result)
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkConfig loads the named config, or reports that defaults apply.
func checkConfig(result *doctorResult, name string) *config.Config {
	result.Config.Source = "defaults"
	if name == "" {
		return config.DefaultConfig()
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return config.DefaultConfig()
	}
	result.Config.Source = name
	for _, p := range config.SearchPaths(name) {
		if fileutil.FileExists(p) {
			result.Config.Source = p
			break
		}
	}
	return cfg
}

// checkFiles verifies the catalog exists and the page can be patched.
func checkFiles(result *doctorResult, cfg *config.Config) {
	f := &result.Files
	f.Input, f.Output = cfg.Input.Path, cfg.Output.Path

	f.InputFound = fileutil.FileExists(f.Input)
	if !f.InputFound {
		result.Errors = append(result.Errors, fmt.Sprintf("Catalog not found: %s", f.Input))
	}

	page, err := os.ReadFile(f.Output) // #nosec G304 -- path from config
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Page not readable: %s", f.Output))
		return
	}
	f.OutputFound = true

	anchors := pipeline.Anchors{
		NavClass:     cfg.Patch.NavClass,
		SectionClass: cfg.Patch.SectionClass,
		EndTag:       cfg.Patch.EndTag,
	}
	patcher := pipeline.NewPatcher(anchors)
	_, report := patcher.Patch(string(page), "", "")
	f.NavAnchors, f.SectionAnchors, f.EndMarker = report.NavAnchors, report.SectionAnchors, report.EndMarkerFound
	for _, w := range report.Warnings(patcher.Anchors()) {
		result.Warnings = append(result.Warnings, "Page: "+w)
	}
}

// checkChrome detects Chrome/Chromium. Only scrape --browser needs it, so a
// missing browser is a warning.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found; scrape --browser will download Chromium or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- browser path from env or rod lookup
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Chrome.Found && (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("TOOLCARDS_CONTAINER") == "1" {
		return true, "TOOLCARDS_CONTAINER=1"
	}
	if fileutil.FileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory is writable; browser profiles
// live there.
func checkSystem(result *doctorResult) {
	tmp, err := os.CreateTemp("", "toolcards-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", os.TempDir()))
		return
	}
	name := tmp.Name()
	_ = tmp.Close()
	_ = os.Remove(name)
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "toolcards doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config")
	fmt.Fprintf(w, "  [OK] Source: %s\n", r.Config.Source)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Files")
	printCheck(w, r.Files.InputFound, "Catalog: "+r.Files.Input)
	printCheck(w, r.Files.OutputFound, "Page: "+r.Files.Output)
	if r.Files.OutputFound {
		fmt.Fprintf(w, "       anchors: %d nav, %d section, end marker %v\n",
			r.Files.NavAnchors, r.Files.SectionAnchors, r.Files.EndMarker)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium (scrape --browser)")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	printCheck(w, r.System.TempWritable, "Temp directory: "+filepath.Clean(os.TempDir()))
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func printCheck(w io.Writer, ok bool, label string) {
	if ok {
		fmt.Fprintf(w, "  [OK] %s\n", label)
		return
	}
	fmt.Fprintf(w, "  [ERROR] %s\n", label)
}
