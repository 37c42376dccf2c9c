// Package audio provides the playback capability used by the clip player.
// It uses the beep library to decode WAV, OGG, and MP3 files and play them
// through the system speaker one clip at a time.
package audio
