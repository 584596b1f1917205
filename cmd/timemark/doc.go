// Command timemark marks timepoints in media playing in mpv and extracts
// frames or clips around them with ffmpeg.
package main
