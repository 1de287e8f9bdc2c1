// Command chaptersaw extracts, filters, and re-merges chapter-delimited
// segments from video containers by orchestrating ffprobe, ffmpeg, and
// mkvpropedit.
package main
