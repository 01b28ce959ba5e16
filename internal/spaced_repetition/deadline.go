package spaced_repetition

// deadlineWindow is how close (in days) a goal deadline has to be before
// review intervals start getting compressed.
const deadlineWindow = 7

// CompressInterval caps a review interval when a goal deadline is near, so
// the scheduler cannot push a review past the goal window. Inside the final
// week the interval is limited to half the remaining days; a cap of zero
// forces a next-day review.
func CompressInterval(intervalDays, daysRemaining int) int {
	if daysRemaining >= deadlineWindow {
		return intervalDays
	}
	maxInterval := daysRemaining / 2
	if maxInterval < 0 {
		maxInterval = 0
	}
	if intervalDays > maxInterval {
		return maxInterval
	}
	return intervalDays
}
