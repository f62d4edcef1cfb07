package fingerprint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// VideoTools names the external binaries used to probe and extract a frame
// from a video container. Any ffprobe/ffmpeg-compatible pair suffices.
type VideoTools struct {
	FFprobe string
	FFmpeg  string
}

// DefaultVideoTools returns the conventional binary names, resolved from PATH.
func DefaultVideoTools() VideoTools {
	return VideoTools{FFprobe: "ffprobe", FFmpeg: "ffmpeg"}
}

func (t VideoTools) ffprobe() string {
	if strings.TrimSpace(t.FFprobe) == "" {
		return "ffprobe"
	}
	return t.FFprobe
}

func (t VideoTools) ffmpeg() string {
	if strings.TrimSpace(t.FFmpeg) == "" {
		return "ffmpeg"
	}
	return t.FFmpeg
}

type probeResult struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	CodecType    string `json:"codec_type"`
	AvgFrameRate string `json:"avg_frame_rate"`
	NbFrames     string `json:"nb_frames"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

func probe(ctx context.Context, binary, path string) (probeResult, error) {
	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner",
		"-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return probeResult{}, fmt.Errorf("ffprobe: %w: %s", err, strings.TrimSpace(string(output)))
	}
	var result probeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return probeResult{}, fmt.Errorf("ffprobe: parse output: %w", err)
	}
	return result, nil
}

func (r probeResult) videoStream() (probeStream, bool) {
	for _, s := range r.Streams {
		if strings.EqualFold(s.CodecType, "video") {
			return s, true
		}
	}
	return probeStream{}, false
}

func (r probeResult) durationSeconds() float64 {
	return parseFloatOr(r.Format.Duration, 0)
}

func (s probeStream) frameRate() float64 {
	parts := strings.SplitN(s.AvgFrameRate, "/", 2)
	if len(parts) != 2 {
		return parseFloatOr(s.AvgFrameRate, 0)
	}
	num := parseFloatOr(parts[0], 0)
	den := parseFloatOr(parts[1], 0)
	if den == 0 {
		return 0
	}
	return num / den
}

func (s probeStream) frameCount() int {
	if n, err := strconv.Atoi(strings.TrimSpace(s.NbFrames)); err == nil {
		return n
	}
	return 0
}

func parseFloatOr(value string, fallback float64) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

// thumbnailFrameIndex locates the frame at min(total_frames/2, floor(fps*3)),
// per the derivation contract.
func thumbnailFrameIndex(totalFrames int, fps float64) int {
	byHalf := totalFrames / 2
	byFps := int(math.Floor(fps * 3))
	if byHalf < byFps {
		return byHalf
	}
	return byFps
}

// ProbeDuration reports a video container's duration in seconds, used for
// metadata readback on an asset already persisted to disk.
func ProbeDuration(ctx context.Context, tools VideoTools, path string) (float64, error) {
	if tools.ffprobe() == "" {
		tools = DefaultVideoTools()
	}
	info, err := probe(ctx, tools.ffprobe(), path)
	if err != nil {
		return 0, &VideoError{Cause: err}
	}
	return info.durationSeconds(), nil
}

// decodeVideo probes the container, derives the thumbnail frame's pixel
// buffer, and reports the container duration.
func decodeVideo(ctx context.Context, tools VideoTools, data []byte, ext string) (pixelBuffer, float64, error) {
	tmp, err := os.CreateTemp("", "archiveboard-video-*."+ext)
	if err != nil {
		return pixelBuffer{}, 0, &VideoError{Cause: err}
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return pixelBuffer{}, 0, &VideoError{Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return pixelBuffer{}, 0, &VideoError{Cause: err}
	}

	info, err := probe(ctx, tools.ffprobe(), path)
	if err != nil {
		return pixelBuffer{}, 0, &VideoError{Cause: err}
	}
	stream, ok := info.videoStream()
	if !ok {
		return pixelBuffer{}, 0, &VideoError{Cause: fmt.Errorf("no video stream found")}
	}

	fps := stream.frameRate()
	totalFrames := stream.frameCount()
	if totalFrames == 0 && fps > 0 {
		totalFrames = int(info.durationSeconds() * fps)
	}
	frameIndex := thumbnailFrameIndex(totalFrames, fps)

	frame, err := extractFrame(ctx, tools.ffmpeg(), path, frameIndex, fps)
	if err != nil {
		return pixelBuffer{}, 0, err
	}

	thumb, err := decodeImage(frame, "png")
	if err != nil {
		return pixelBuffer{}, 0, &ThumbnailError{Reason: err.Error()}
	}
	thumb.Width = stream.Width
	thumb.Height = stream.Height
	if thumb.Width == 0 {
		thumb.Width, thumb.Height = 0, 0
	}

	return thumb, info.durationSeconds(), nil
}

// extractFrame seeks to the target frame index and decodes a single PNG
// frame. If the direct seek fails (fragile on containers without nearby
// keyframes), it falls back to decoding and discarding frames from the
// start until the target index is reached.
func extractFrame(ctx context.Context, binary, path string, frameIndex int, fps float64) ([]byte, error) {
	seekSeconds := 0.0
	if fps > 0 {
		seekSeconds = float64(frameIndex) / fps
	}

	frame, err := runFFmpegFrame(ctx, binary, []string{
		"-v", "error", "-ss", fmt.Sprintf("%.3f", seekSeconds), "-i", path,
		"-frames:v", "1", "-f", "image2pipe", "-vcodec", "png", "-",
	})
	if err == nil && len(frame) > 0 {
		return frame, nil
	}

	// Fallback: rewind to start, decode and discard frames until frameIndex.
	frame, fallbackErr := runFFmpegFrame(ctx, binary, []string{
		"-v", "error", "-i", path,
		"-vf", fmt.Sprintf("select=eq(n\\,%d)", frameIndex), "-vsync", "0",
		"-frames:v", "1", "-f", "image2pipe", "-vcodec", "png", "-",
	})
	if fallbackErr != nil || len(frame) == 0 {
		return nil, &ThumbnailError{Reason: "seek and fallback decode both failed"}
	}
	return frame, nil
}

func runFFmpegFrame(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
