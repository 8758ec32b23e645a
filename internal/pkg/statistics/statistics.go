package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/antojadoapp/antojado/app/models"
	"github.com/antojadoapp/antojado/internal/pkg/cache"
	"github.com/antojadoapp/antojado/internal/pkg/database"
)

const (
	CacheKeyBusinessesTotal = "statistics:businesses:total"
	CacheKeyReviewsTotal    = "statistics:reviews:total"
	CacheKeyReviewsDaily    = "statistics:reviews:daily:%s" // Format with date YYYY-MM-DD
	CacheExpiration         = 30 * time.Minute
)

// StatisticsData holds the directory totals shown on the home page
type StatisticsData struct {
	TotalBusinesses int
	TotalReviews    int
	TodayReviews    int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached totals are stale
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached totals when they are stale
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next UpdateCacheIfNeeded call to refresh
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache recomputes all totals and stores them in the cache
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalBusinesses int64
	if err := db.Model(&models.Business{}).Count(&totalBusinesses).Error; err != nil {
		log.Printf("Error counting businesses: %v", err)
		return err
	}

	var totalReviews int64
	if err := db.Model(&models.Review{}).Count(&totalReviews).Error; err != nil {
		log.Printf("Error counting reviews: %v", err)
		return err
	}

	var todayReviews int64
	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	if err := db.Model(&models.Review{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&todayReviews).Error; err != nil {
		log.Printf("Error counting today's reviews: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyBusinessesTotal, strconv.FormatInt(totalBusinesses, 10), CacheExpiration); err != nil {
		return err
	}

	if err := cache.Set(CacheKeyReviewsTotal, strconv.FormatInt(totalReviews, 10), CacheExpiration); err != nil {
		return err
	}

	dailyKey := fmt.Sprintf(CacheKeyReviewsDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayReviews, 10), CacheExpiration); err != nil {
		return err
	}

	return nil
}

// GetTotalBusinessesCount returns the number of listed businesses from cache or database
func GetTotalBusinessesCount() int {
	val, err := cache.Get(CacheKeyBusinessesTotal)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.Business{}).Count(&count).Error; err != nil {
			log.Printf("Error counting businesses: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyBusinessesTotal, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching business count: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTotalReviews returns the total number of reviews from cache or database
func GetTotalReviews() int {
	val, err := cache.Get(CacheKeyReviewsTotal)
	if err != nil {
		var count int64
		db := database.GetDB()
		if err := db.Model(&models.Review{}).Count(&count).Error; err != nil {
			log.Printf("Error counting reviews: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyReviewsTotal, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching review count: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTodayReviews returns the number of reviews written today from cache or database
func GetTodayReviews() int {
	today := time.Now().Format("2006-01-02")
	dailyKey := fmt.Sprintf(CacheKeyReviewsDaily, today)

	val, err := cache.Get(dailyKey)
	if err != nil {
		var count int64
		db := database.GetDB()
		todayStart, _ := time.Parse("2006-01-02", today)
		todayEnd := todayStart.Add(24 * time.Hour)

		if err := db.Model(&models.Review{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&count).Error; err != nil {
			log.Printf("Error counting today's reviews: %v", err)
			return 0
		}

		if err := cache.Set(dailyKey, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching today's review count: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetStatistics bundles the totals for the home page
func GetStatistics() StatisticsData {
	UpdateCacheIfNeeded()

	return StatisticsData{
		TotalBusinesses: GetTotalBusinessesCount(),
		TotalReviews:    GetTotalReviews(),
		TodayReviews:    GetTodayReviews(),
	}
}
