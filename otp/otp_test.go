package otp

import (
	"regexp"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^[0-9]{6}$`)

func TestGenerateCodeFormat(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := GenerateCode()
		require.Regexp(t, codePattern, code)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestGenerateCodeDistribution(t *testing.T) {
	const samples = 10000
	counts := make(map[string]int, samples)
	buckets := make([]int, 9)

	for i := 0; i < samples; i++ {
		code := GenerateCode()
		counts[code]++
		n, _ := strconv.Atoi(code)
		buckets[(n-100000)/100000]++
	}

	// expected frequency of any single value is ~0.011 samples; 0.05% of
	// the sample size above that is 5 occurrences
	for code, c := range counts {
		assert.LessOrEqualf(t, c, 5, "code %s drawn %d times", code, c)
	}

	// each leading digit should hold roughly a ninth of the draws
	for i, c := range buckets {
		assert.InDeltaf(t, samples/9, c, 200, "bucket %d holds %d draws", i+1, c)
	}
}

func TestGenerateCodeConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	codes := make(chan string, 800)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				codes <- GenerateCode()
			}
		}()
	}
	wg.Wait()
	close(codes)

	for code := range codes {
		assert.Regexp(t, codePattern, code)
	}
}

func TestComputeExpiry(t *testing.T) {
	now := time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(10*time.Minute), ComputeExpiry(now, 10*time.Minute))
}

func TestIsExpired(t *testing.T) {
	expiry := time.Date(2026, time.October, 17, 9, 10, 0, 0, time.UTC)

	assert.False(t, IsExpired(expiry, expiry.Add(-time.Nanosecond)))
	assert.True(t, IsExpired(expiry, expiry))
	assert.True(t, IsExpired(expiry, expiry.Add(time.Second)))
}

func TestGeneratorIssue(t *testing.T) {
	now := time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)
	g := Generator{TTL: 10 * time.Minute, Code: func() string { return "123456" }}

	code, expiry := g.Issue(now)

	assert.Equal(t, "123456", code)
	assert.Equal(t, now.Add(10*time.Minute), expiry)
}

func TestNewGenerator(t *testing.T) {
	code, expiry := NewGenerator(time.Minute).Issue(time.Unix(0, 0))

	assert.Regexp(t, codePattern, code)
	assert.Equal(t, time.Unix(60, 0), expiry)
}
