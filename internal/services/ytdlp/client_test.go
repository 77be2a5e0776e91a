package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"
)

func TestNewCLIWithBinary(t *testing.T) {
	cli := NewCLI(WithBinary("/opt/yt-dlp"))
	if cli.binary != "/opt/yt-dlp" {
		t.Fatalf("expected binary override to be applied, got %q", cli.binary)
	}
}

func TestExtractRequiresVideoID(t *testing.T) {
	cli := NewCLI()
	if _, err := cli.Extract(context.Background(), "  ", ExtractOptions{}); err == nil {
		t.Fatal("expected error when video id is empty")
	}
}

func TestExtractBuildsProviderArgs(t *testing.T) {
	var capturedArgs []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		capturedArgs = append([]string(nil), args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "YTDLP_HELPER_MODE=success")
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})

	cli := NewCLI()
	opts := ExtractOptions{
		SocketTimeout:       5 * time.Second,
		FlatExtraction:      true,
		NoCheckCertificates: true,
	}
	if _, err := cli.Extract(context.Background(), "dQw4w9WgXcQ", opts); err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	wantPairs := map[string]string{
		"--socket-timeout": "5",
		"--retries":        "1",
	}
	for flag, value := range wantPairs {
		idx := findArg(capturedArgs, flag)
		if idx == -1 || idx+1 >= len(capturedArgs) {
			t.Fatalf("expected %s flag with value, got %v", flag, capturedArgs)
		}
		if capturedArgs[idx+1] != value {
			t.Fatalf("expected %s %s, got %s", flag, value, capturedArgs[idx+1])
		}
	}
	for _, flag := range []string{"--dump-single-json", "--no-warnings", "--flat-playlist", "--no-check-certificates"} {
		if findArg(capturedArgs, flag) == -1 {
			t.Fatalf("expected %s in args %v", flag, capturedArgs)
		}
	}
	if capturedArgs[len(capturedArgs)-1] != "dQw4w9WgXcQ" {
		t.Fatalf("expected video id as final arg, got %v", capturedArgs)
	}
}

func TestExtractDecodesInfo(t *testing.T) {
	setHelperCommand(t, "success")

	cli := NewCLI()
	info, err := cli.Extract(context.Background(), "abc123", ExtractOptions{})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if info == nil {
		t.Fatal("expected info")
	}
	if info.Duration != 213 {
		t.Fatalf("expected duration 213, got %f", info.Duration)
	}
	if len(info.Formats) != 2 {
		t.Fatalf("expected 2 formats, got %d", len(info.Formats))
	}
	if info.Formats[0].VCodec != "avc1.640028" {
		t.Fatalf("unexpected first format: %+v", info.Formats[0])
	}
	if info.Formats[1].TBR != 129.5 {
		t.Fatalf("expected fractional bitrate to survive decoding, got %f", info.Formats[1].TBR)
	}
}

func TestExtractClassifiesDownloadError(t *testing.T) {
	setHelperCommand(t, "download-error")

	cli := NewCLI()
	_, err := cli.Extract(context.Background(), "abc123", ExtractOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsDownloadError(err) {
		t.Fatalf("expected structured download error, got %T: %v", err, err)
	}
	var de *DownloadError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DownloadError, got %T", err)
	}
	if de.Message != "[youtube] abc123: Private video. Sign in if you've been granted access to this video" {
		t.Fatalf("expected provider text to be preserved, got %q", de.Message)
	}
}

func TestExtractGenericFailureIsNotDownloadError(t *testing.T) {
	setHelperCommand(t, "crash")

	cli := NewCLI()
	_, err := cli.Extract(context.Background(), "abc123", ExtractOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if IsDownloadError(err) {
		t.Fatalf("expected terminal failure, got download error: %v", err)
	}
}

func TestExtractEmptyOutputYieldsNilInfo(t *testing.T) {
	setHelperCommand(t, "empty")

	cli := NewCLI()
	info, err := cli.Extract(context.Background(), "abc123", ExtractOptions{})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if info != nil {
		t.Fatalf("expected nil info for empty provider output, got %+v", info)
	}
}

func TestExtractInvalidJSONFails(t *testing.T) {
	setHelperCommand(t, "badjson")

	cli := NewCLI()
	if _, err := cli.Extract(context.Background(), "abc123", ExtractOptions{}); err == nil {
		t.Fatal("expected decode error")
	}
}

func setHelperCommand(t *testing.T, mode string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("YTDLP_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("YTDLP_HELPER_MODE") {
	case "success":
		fmt.Println(`{"id":"abc123","title":"Test Video","duration":213,"formats":[` +
			`{"format_id":"137","ext":"mp4","vcodec":"avc1.640028","acodec":"none","url":"https://cdn/videoplayback?itag=137","height":1080,"width":1920,"tbr":4400},` +
			`{"format_id":"140","ext":"m4a","vcodec":"none","acodec":"mp4a.40.2","url":"https://cdn/videoplayback?itag=140","tbr":129.5}]}`)
		os.Exit(0)
	case "download-error":
		fmt.Fprintln(os.Stderr, "ERROR: [youtube] abc123: Private video. Sign in if you've been granted access to this video")
		os.Exit(1)
	case "crash":
		fmt.Fprintln(os.Stderr, "Traceback (most recent call last): something unexpected")
		os.Exit(2)
	case "empty":
		os.Exit(0)
	case "badjson":
		fmt.Println("not-json")
		os.Exit(0)
	default:
		os.Exit(0)
	}
}

func findArg(args []string, target string) int {
	for i, arg := range args {
		if arg == target {
			return i
		}
	}
	return -1
}
