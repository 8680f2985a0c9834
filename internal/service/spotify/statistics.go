package spotify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dsmirnov/spotify-grabber/internal/logger"
)

const (
	// unknownParentKey is used as a fallback key when parent collection is unknown.
	unknownParentKey = "unknown"
	// summarySeparator frames the summary sections.
	summarySeparator = "═══════════════════════════════════════════════════════════════"
)

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}

	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

// incrementTrackDownloaded increments the downloaded tracks counter and adds bytes.
func (s *ServiceImpl) incrementTrackDownloaded(bytes int64) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.TracksDownloaded++
	s.stats.TotalTracksProcessed++
	s.stats.TotalBytesDownloaded += bytes
}

// incrementTrackSkipped increments the skipped tracks counter with reason.
func (s *ServiceImpl) incrementTrackSkipped(reason SkipReason) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.TracksSkipped++
	s.stats.TotalTracksProcessed++

	// Track specific skip reason.
	switch reason {
	case SkipReasonArchive:
		s.stats.TracksSkippedArchive++
	case SkipReasonExists:
		s.stats.TracksSkippedExists++
	case SkipReasonUnplayable:
		s.stats.TracksSkippedUnplayable++
	}
}

// incrementTrackFailed increments the failed tracks counter.
func (s *ServiceImpl) incrementTrackFailed() {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.TracksFailed++
	s.stats.TotalTracksProcessed++
}

// groupErrors separates item errors from collection errors for better display organization.
func (s *ServiceImpl) groupErrors(errors []DownloadError) (itemErrors, collectionErrors []DownloadError) {
	for i := range errors {
		if errors[i].Kind == EntityKindTrack || errors[i].Kind == EntityKindEpisode {
			itemErrors = append(itemErrors, errors[i])
		} else {
			collectionErrors = append(collectionErrors, errors[i])
		}
	}

	return itemErrors, collectionErrors
}

// PrintDownloadSummary prints a formatted summary of download statistics.
func (s *ServiceImpl) PrintDownloadSummary(ctx context.Context) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	stats := s.stats

	// If nothing was processed, don't print summary.
	if stats.TotalTracksProcessed == 0 {
		return
	}

	// Check if the context was canceled (CTRL+C or timeout).
	wasInterrupted := ctx.Err() != nil

	s.printSummaryHeader(ctx, wasInterrupted)
	s.printTrackStatistics(ctx, stats)
	s.printDataTransferStatistics(ctx, stats)
	s.printSummaryFooter(ctx)
	s.printErrorDetails(ctx, stats)
	s.printFinalMessage(ctx, wasInterrupted, stats)
}

// printSummaryHeader prints the summary header.
func (s *ServiceImpl) printSummaryHeader(ctx context.Context, wasInterrupted bool) {
	logger.Info(ctx, "")
	logger.Info(ctx, summarySeparator)

	if wasInterrupted {
		logger.Info(ctx, "           DOWNLOAD SUMMARY (Interrupted)")
	} else {
		logger.Info(ctx, "                     DOWNLOAD SUMMARY")
	}

	logger.Info(ctx, summarySeparator)
}

// printTrackStatistics prints track download statistics.
func (s *ServiceImpl) printTrackStatistics(ctx context.Context, stats *DownloadStatistics) {
	logger.Infof(ctx, "Tracks:           %d total processed", stats.TotalTracksProcessed)

	if stats.TracksDownloaded > 0 {
		logger.Infof(ctx, "  Downloaded:      %d", stats.TracksDownloaded)
	}

	if stats.TracksSkipped > 0 {
		logger.Infof(ctx, "  Skipped:         %d total", stats.TracksSkipped)

		if stats.TracksSkippedArchive > 0 {
			logger.Infof(ctx, "    In Archive:    %d", stats.TracksSkippedArchive)
		}

		if stats.TracksSkippedExists > 0 {
			logger.Infof(ctx, "    Already Exist: %d", stats.TracksSkippedExists)
		}

		if stats.TracksSkippedUnplayable > 0 {
			logger.Infof(ctx, "    Unplayable:    %d", stats.TracksSkippedUnplayable)
		}
	}

	if stats.TracksFailed > 0 {
		logger.Infof(ctx, "  Failed:          %d", stats.TracksFailed)
	}

	// Success rate.
	if stats.TotalTracksProcessed > 0 {
		successCount := stats.TracksDownloaded + stats.TracksSkipped
		successRate := float64(successCount) / float64(stats.TotalTracksProcessed) * 100
		logger.Infof(ctx, "  Success Rate:    %.1f%%", successRate)
	}
}

// printDataTransferStatistics prints data transfer statistics.
func (s *ServiceImpl) printDataTransferStatistics(ctx context.Context, stats *DownloadStatistics) {
	if stats.TotalBytesDownloaded > 0 {
		logger.Info(ctx, "")
		//nolint:gosec // TotalBytesDownloaded is always positive, no overflow risk.
		logger.Infof(ctx, "Data Downloaded:  %s", humanize.Bytes(uint64(stats.TotalBytesDownloaded)))
	}

	// Print duration if we have both start and end times.
	if !stats.StartTime.IsZero() && !stats.EndTime.IsZero() {
		duration := stats.EndTime.Sub(stats.StartTime)

		// Only show if duration is meaningful (> 100ms).
		if duration > 100*time.Millisecond {
			logger.Infof(ctx, "Duration:         %s", formatDuration(duration))

			// Calculate and show average speed if we downloaded anything.
			if stats.TotalBytesDownloaded > 0 {
				bytesPerSecond := float64(stats.TotalBytesDownloaded) / duration.Seconds()
				logger.Infof(ctx, "Average Speed:    %s/s", humanize.Bytes(uint64(bytesPerSecond)))
			}
		}
	}
}

// printSummaryFooter prints the summary footer separator.
func (s *ServiceImpl) printSummaryFooter(ctx context.Context) {
	logger.Info(ctx, summarySeparator)
}

// printErrorDetails prints detailed error information if any errors occurred.
func (s *ServiceImpl) printErrorDetails(ctx context.Context, stats *DownloadStatistics) {
	if len(stats.Errors) == 0 {
		return
	}

	logger.Info(ctx, "")
	logger.Errorf(ctx, "ERRORS ENCOUNTERED: %d", len(stats.Errors))

	// Group errors by parent collection for better readability.
	itemErrors, collectionErrors := s.groupErrors(stats.Errors)

	s.printCollectionErrors(ctx, collectionErrors)
	s.printItemErrors(ctx, itemErrors)

	logger.Info(ctx, "")
	logger.Info(ctx, summarySeparator)

	// Print retry command for failed items.
	s.printRetryCommand(ctx, collectionErrors)
}

// printCollectionErrors prints collection-level errors (albums, playlists, shows, artists).
func (s *ServiceImpl) printCollectionErrors(ctx context.Context, collectionErrors []DownloadError) {
	if len(collectionErrors) == 0 {
		return
	}

	logger.Info(ctx, "")
	logger.Errorf(ctx, "COLLECTION ERRORS:")

	for i := range collectionErrors {
		logger.Info(ctx, "")
		logger.Errorf(ctx, "  [%d] %s: %s", i+1, collectionErrors[i].Kind, collectionErrors[i].ItemTitle)
		logger.Errorf(ctx, "      ID: %s", collectionErrors[i].ItemID)
		logger.Errorf(ctx, "      Phase: %s", collectionErrors[i].Phase)
		logger.Errorf(ctx, "      Error: %s", collectionErrors[i].ErrorMessage)
	}
}

// printItemErrors prints track and episode errors grouped by parent collection.
func (s *ServiceImpl) printItemErrors(ctx context.Context, itemErrors []DownloadError) {
	if len(itemErrors) == 0 {
		return
	}

	logger.Info(ctx, "")
	logger.Errorf(ctx, "TRACK ERRORS:")

	// Group by parent.
	parentGroups := s.groupItemErrorsByParent(itemErrors)

	// Print grouped errors.
	for _, errs := range parentGroups {
		if len(errs) == 0 {
			continue
		}

		s.printParentGroupErrors(ctx, errs)
	}
}

// groupItemErrorsByParent groups item errors by their parent collection.
func (s *ServiceImpl) groupItemErrorsByParent(itemErrors []DownloadError) map[string][]DownloadError {
	parentGroups := make(map[string][]DownloadError)

	for i := range itemErrors {
		key := itemErrors[i].ParentID
		if key == "" {
			key = unknownParentKey
		}

		parentGroups[key] = append(parentGroups[key], itemErrors[i])
	}

	return parentGroups
}

// printParentGroupErrors prints errors for items from a specific parent collection.
func (s *ServiceImpl) printParentGroupErrors(ctx context.Context, errs []DownloadError) {
	firstErr := errs[0]

	logger.Info(ctx, "")

	if firstErr.ParentTitle != "" {
		logger.Errorf(ctx, "  From %s: %s (ID: %s)",
			firstErr.ParentKind, firstErr.ParentTitle, firstErr.ParentID)
	} else {
		logger.Errorf(ctx, "  From unknown collection:")
	}

	for i := range errs {
		logger.Info(ctx, "")
		logger.Errorf(ctx, "    [%d] %s", i+1, errs[i].ItemTitle)
		logger.Errorf(ctx, "        ID: %s", errs[i].ItemID)
		logger.Errorf(ctx, "        Phase: %s", errs[i].Phase)
		logger.Errorf(ctx, "        Error: %s", errs[i].ErrorMessage)
	}
}

// printRetryCommand generates and prints a command to retry failed collections.
// Individual track errors are part of their parent collection and are not listed.
func (s *ServiceImpl) printRetryCommand(ctx context.Context, collectionErrors []DownloadError) {
	command := buildRetryCommand(collectionErrors)
	if command == "" {
		return
	}

	logger.Info(ctx, "")
	logger.Info(ctx, "To retry only failed downloads, run:")
	logger.Info(ctx, "")
	logger.Infof(ctx, "  %s", command)
}

// buildRetryCommand builds the retry command line for failed collections.
// Links are passed as positional arguments. An empty string means there
// is nothing to retry.
func buildRetryCommand(collectionErrors []DownloadError) string {
	var (
		urlsMap = make(map[string]bool)
		urls    []string
	)

	for i := range collectionErrors {
		if collectionErrors[i].ItemID == "" {
			continue
		}

		url := fmt.Sprintf("https://open.spotify.com/%s/%s",
			collectionErrors[i].Kind, collectionErrors[i].ItemID)

		if !urlsMap[url] {
			urlsMap[url] = true
			urls = append(urls, url)
		}
	}

	if len(urls) == 0 {
		return ""
	}

	return "spotify-grabber " + strings.Join(urls, " ")
}

// printFinalMessage prints a helpful message based on download results.
func (s *ServiceImpl) printFinalMessage(ctx context.Context, wasInterrupted bool, stats *DownloadStatistics) {
	switch {
	case wasInterrupted:
		logger.Info(ctx, "")
		logger.Warn(ctx, "Download interrupted by user (CTRL+C).")

		if stats.TracksDownloaded > 0 {
			logger.Infof(ctx, "Successfully downloaded %d track(s) before interruption.", stats.TracksDownloaded)
		}
	case len(stats.Errors) > 0:
		logger.Info(ctx, "")
		logger.Warnf(ctx, "%d error(s) occurred during download. See detailed error log above.", len(stats.Errors))
	case stats.TracksDownloaded > 0:
		logger.Info(ctx, "")
		logger.Info(ctx, "All downloads completed successfully!")
	case stats.TracksSkipped > 0 && stats.TracksDownloaded == 0:
		logger.Info(ctx, "")
		logger.Info(ctx, "All tracks already exist in the output directory.")
	}
}
