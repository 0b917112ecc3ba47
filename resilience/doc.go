// Package resilience holds the token bucket the sandbox server uses to
// throttle incoming requests.
//
//	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{Name: "sandbox", Rate: 50, Burst: 100})
//	if !rl.Allow() {
//	    retry := rl.RetryAfter()
//	}
package resilience
