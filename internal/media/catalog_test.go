package media

import "testing"

func both() PartitionOptions {
	return PartitionOptions{IncludeVideo: true, IncludeAudio: true}
}

func TestPartitionSplitsVideoAndAudio(t *testing.T) {
	formats := []RawFormat{
		{FormatID: "137", VCodec: "avc1.640028", ACodec: "none", URL: "https://cdn/videoplayback?itag=137", Height: 1080, Width: 1920, TBR: 4400},
		{FormatID: "140", VCodec: "none", ACodec: "mp4a.40.2", URL: "https://cdn/videoplayback?itag=140", TBR: 129.5},
		{FormatID: "22", VCodec: "avc1.64001F", ACodec: "mp4a.40.2", URL: "https://cdn/videoplayback?itag=22", Height: 720, Width: 1280, TBR: 1200},
	}

	video, audio := Partition(formats, both())
	if len(video) != 2 {
		t.Fatalf("expected 2 video candidates, got %d", len(video))
	}
	if len(audio) != 2 {
		t.Fatalf("expected 2 audio candidates, got %d", len(audio))
	}
	// Muxed format 22 qualifies for both branches with disjoint codec fields.
	if video[1].Codec != "avc1.64001F" {
		t.Fatalf("video branch must read the video codec, got %q", video[1].Codec)
	}
	if audio[1].Codec != "mp4a.40.2" {
		t.Fatalf("audio branch must read the audio codec, got %q", audio[1].Codec)
	}
}

func TestPartitionDiscardsUnusableEntries(t *testing.T) {
	formats := []RawFormat{
		{FormatID: "no-url", VCodec: "vp9", ACodec: "opus", TBR: 160},
		{FormatID: "manifest", VCodec: "avc1", URL: "https://cdn/manifest.mpd/video", TBR: 900},
		{FormatID: "codecless", VCodec: "none", ACodec: "none", URL: "https://cdn/videoplayback?itag=0", TBR: 100},
		{FormatID: "no-bitrate", VCodec: "none", ACodec: "opus", URL: "https://cdn/videoplayback?itag=251"},
	}

	video, audio := Partition(formats, both())
	if len(video) != 0 {
		t.Fatalf("expected no video candidates, got %v", video)
	}
	if len(audio) != 0 {
		t.Fatalf("expected no audio candidates, got %v", audio)
	}
}

func TestPartitionProgressiveOnly(t *testing.T) {
	formats := []RawFormat{
		{FormatID: "direct", VCodec: "avc1", URL: "https://cdn/videoplayback?itag=18", Height: 360},
		{FormatID: "adaptive", VCodec: "avc1", URL: "https://cdn/segment/1234", Height: 1080},
	}

	video, _ := Partition(formats, PartitionOptions{IncludeVideo: true, RequireProgressive: true})
	if len(video) != 1 || video[0].FormatID != "direct" {
		t.Fatalf("expected only the progressive candidate, got %v", video)
	}

	video, _ = Partition(formats, PartitionOptions{IncludeVideo: true})
	if len(video) != 2 {
		t.Fatalf("expected both candidates without the progressive filter, got %v", video)
	}
}

func TestPartitionRespectsBranchToggles(t *testing.T) {
	formats := []RawFormat{
		{FormatID: "v", VCodec: "vp9", URL: "https://cdn/videoplayback?itag=247", Height: 720},
		{FormatID: "a", ACodec: "opus", URL: "https://cdn/videoplayback?itag=251", TBR: 160},
	}

	video, audio := Partition(formats, PartitionOptions{IncludeAudio: true})
	if len(video) != 0 {
		t.Fatalf("video branch disabled, got %v", video)
	}
	if len(audio) != 1 {
		t.Fatalf("expected audio candidate, got %v", audio)
	}
}

func TestResolutionDerivation(t *testing.T) {
	cases := []struct {
		name string
		f    RawFormat
		want string
	}{
		{"provider supplied", RawFormat{Resolution: "1920x1080", Height: 1080, Width: 1920}, "1920x1080"},
		{"width and height", RawFormat{Height: 720, Width: 1280}, "1280x720"},
		{"height only", RawFormat{Height: 480}, "480p"},
		{"unknown", RawFormat{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.f.VCodec = "avc1"
			tc.f.URL = "https://cdn/videoplayback"
			if got := VideoStream(tc.f).Resolution; got != tc.want {
				t.Fatalf("resolution = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStreamConstructionDefaults(t *testing.T) {
	f := RawFormat{VCodec: "av01.0.08M.08", ACodec: "mp4a.40.2", URL: "https://cdn/videoplayback", TBR: 2000, Filesize: 1 << 20, FormatNote: "1080p", FormatID: "399"}
	v := VideoStream(f)
	if v.Ext != "unknown" {
		t.Fatalf("expected unknown ext fallback, got %q", v.Ext)
	}
	a := AudioStream(f)
	if a.Height != 0 || a.Resolution != "" {
		t.Fatalf("audio stream must not carry video dimensions, got %+v", a)
	}
	if a.Codec != "mp4a.40.2" || v.Codec != "av01.0.08M.08" {
		t.Fatalf("branch codecs must come from their own fields, got %q / %q", v.Codec, a.Codec)
	}
}
