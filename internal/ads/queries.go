// internal/ads/queries.go
package ads

import "fmt"

// Pre-built GAQL report queries. Identifiers and date ranges are
// interpolated as-is; callers own their validity.

// CampaignsOverviewQuery lists all campaigns with performance metrics.
func CampaignsOverviewQuery(dateRange, statusFilter string) string {
	query := fmt.Sprintf(`
            SELECT
                campaign.id,
                campaign.name,
                campaign.status,
                campaign.advertising_channel_type,
                campaign.bidding_strategy_type,
                metrics.impressions,
                metrics.clicks,
                metrics.ctr,
                metrics.average_cpc,
                metrics.cost_micros,
                metrics.conversions,
                metrics.cost_per_conversion
            FROM campaign
            WHERE segments.date DURING %s`, dateRange)

	if statusFilter != "" {
		query += fmt.Sprintf(" AND campaign.status = %s", statusFilter)
	}

	query += " ORDER BY metrics.impressions DESC"

	return query
}

// AdGroupsPerformanceQuery lists ad groups, optionally scoped to a campaign.
func AdGroupsPerformanceQuery(campaignID, dateRange string) string {
	query := fmt.Sprintf(`
            SELECT
                campaign.id,
                campaign.name,
                ad_group.id,
                ad_group.name,
                ad_group.status,
                metrics.impressions,
                metrics.clicks,
                metrics.ctr,
                metrics.average_cpc,
                metrics.cost_micros,
                metrics.conversions
            FROM ad_group
            WHERE segments.date DURING %s`, dateRange)

	if campaignID != "" {
		query += fmt.Sprintf(" AND campaign.id = %s", campaignID)
	}

	query += " ORDER BY metrics.cost_micros DESC"

	return query
}

// KeywordsPerformanceQuery lists keywords above an impressions floor.
func KeywordsPerformanceQuery(campaignID, dateRange string, minImpressions int) string {
	query := fmt.Sprintf(`
            SELECT
                campaign.id,
                campaign.name,
                ad_group.id,
                ad_group.name,
                ad_group_criterion.keyword.text,
                ad_group_criterion.keyword.match_type,
                ad_group_criterion.status,
                metrics.impressions,
                metrics.clicks,
                metrics.ctr,
                metrics.average_cpc,
                metrics.cost_micros,
                metrics.conversions,
                metrics.quality_score
            FROM keyword_view
            WHERE segments.date DURING %s
                AND metrics.impressions >= %d`, dateRange, minImpressions)

	if campaignID != "" {
		query += fmt.Sprintf(" AND campaign.id = %s", campaignID)
	}

	query += " ORDER BY metrics.impressions DESC"

	return query
}

// SearchTermsReportQuery lists the actual queries that triggered ads.
func SearchTermsReportQuery(campaignID, dateRange string) string {
	query := fmt.Sprintf(`
            SELECT
                campaign.id,
                campaign.name,
                ad_group.id,
                ad_group.name,
                search_term_view.search_term,
                search_term_view.status,
                metrics.impressions,
                metrics.clicks,
                metrics.ctr,
                metrics.cost_micros,
                metrics.conversions
            FROM search_term_view
            WHERE segments.date DURING %s`, dateRange)

	if campaignID != "" {
		query += fmt.Sprintf(" AND campaign.id = %s", campaignID)
	}

	query += " ORDER BY metrics.impressions DESC"

	return query
}

// AdsPerformanceQuery lists responsive search ads with metrics.
func AdsPerformanceQuery(campaignID, adGroupID, dateRange string) string {
	query := fmt.Sprintf(`
            SELECT
                campaign.id,
                campaign.name,
                ad_group.id,
                ad_group.name,
                ad_group_ad.ad.id,
                ad_group_ad.ad.type,
                ad_group_ad.status,
                ad_group_ad.ad.responsive_search_ad.headlines,
                ad_group_ad.ad.responsive_search_ad.descriptions,
                metrics.impressions,
                metrics.clicks,
                metrics.ctr,
                metrics.average_cpc,
                metrics.cost_micros,
                metrics.conversions
            FROM ad_group_ad
            WHERE segments.date DURING %s`, dateRange)

	if campaignID != "" {
		query += fmt.Sprintf(" AND campaign.id = %s", campaignID)
	}
	if adGroupID != "" {
		query += fmt.Sprintf(" AND ad_group.id = %s", adGroupID)
	}

	query += " ORDER BY metrics.impressions DESC"

	return query
}

// CampaignBudgetQuery returns budget settings, optionally for one campaign.
func CampaignBudgetQuery(campaignID string) string {
	query := `
            SELECT
                campaign.id,
                campaign.name,
                campaign.status,
                campaign_budget.amount_micros,
                campaign_budget.delivery_method,
                campaign.target_spend.cpc_bid_ceiling_micros,
                campaign.target_spend.target_spend_micros
            FROM campaign`

	if campaignID != "" {
		query += fmt.Sprintf(" WHERE campaign.id = %s", campaignID)
	}

	return query
}

// NegativeKeywordsQuery lists campaign-level negative keywords.
func NegativeKeywordsQuery(campaignID string) string {
	query := `
            SELECT
                campaign.id,
                campaign.name,
                campaign_criterion.criterion_id,
                campaign_criterion.keyword.text,
                campaign_criterion.keyword.match_type,
                campaign_criterion.negative
            FROM campaign_criterion
            WHERE campaign_criterion.negative = TRUE`

	if campaignID != "" {
		query += fmt.Sprintf(" AND campaign.id = %s", campaignID)
	}

	return query
}

// GeographicPerformanceQuery breaks metrics down by location.
func GeographicPerformanceQuery(campaignID, dateRange string) string {
	query := fmt.Sprintf(`
            SELECT
                campaign.id,
                campaign.name,
                geographic_view.country_criterion_id,
                geographic_view.location_type,
                metrics.impressions,
                metrics.clicks,
                metrics.ctr,
                metrics.cost_micros,
                metrics.conversions
            FROM geographic_view
            WHERE segments.date DURING %s`, dateRange)

	if campaignID != "" {
		query += fmt.Sprintf(" AND campaign.id = %s", campaignID)
	}

	query += " ORDER BY metrics.impressions DESC"

	return query
}

// DevicePerformanceQuery breaks metrics down by device type.
func DevicePerformanceQuery(campaignID, dateRange string) string {
	query := fmt.Sprintf(`
            SELECT
                campaign.id,
                campaign.name,
                segments.device,
                metrics.impressions,
                metrics.clicks,
                metrics.ctr,
                metrics.average_cpc,
                metrics.cost_micros,
                metrics.conversions
            FROM campaign
            WHERE segments.date DURING %s`, dateRange)

	if campaignID != "" {
		query += fmt.Sprintf(" AND campaign.id = %s", campaignID)
	}

	query += " ORDER BY segments.device, metrics.impressions DESC"

	return query
}

// AccountSummaryQuery returns the high-level account rollup.
func AccountSummaryQuery(dateRange string) string {
	return fmt.Sprintf(`
            SELECT
                customer.id,
                customer.descriptive_name,
                metrics.impressions,
                metrics.clicks,
                metrics.ctr,
                metrics.average_cpc,
                metrics.cost_micros,
                metrics.conversions,
                metrics.cost_per_conversion
            FROM customer
            WHERE segments.date DURING %s`, dateRange)
}

// CustomerInfoQuery returns account details for one customer.
func CustomerInfoQuery(customerID string) string {
	return fmt.Sprintf(`
            SELECT
                customer.id,
                customer.descriptive_name,
                customer.currency_code,
                customer.time_zone,
                customer.manager,
                customer.test_account
            FROM customer
            WHERE customer.id = %s`, customerID)
}

// LowQualityScoreQuery finds keywords scoring below 5 with meaningful
// traffic.
func LowQualityScoreQuery(minImpressions int) string {
	return fmt.Sprintf(`
            SELECT
                campaign.id,
                campaign.name,
                ad_group.id,
                ad_group.name,
                ad_group_criterion.keyword.text,
                ad_group_criterion.keyword.match_type,
                metrics.quality_score,
                metrics.impressions,
                metrics.clicks,
                metrics.ctr
            FROM keyword_view
            WHERE segments.date DURING LAST_30_DAYS
                AND metrics.impressions >= %d
                AND metrics.quality_score < 5
            ORDER BY metrics.impressions DESC`, minImpressions)
}

// HighCostLowConversionQuery finds campaigns spending over 100 units with
// under 10 conversions.
func HighCostLowConversionQuery() string {
	return `
            SELECT
                campaign.id,
                campaign.name,
                campaign.status,
                metrics.cost_micros,
                metrics.conversions,
                metrics.cost_per_conversion
            FROM campaign
            WHERE segments.date DURING LAST_30_DAYS
                AND metrics.cost_micros > 100000000
                AND metrics.conversions < 10
            ORDER BY metrics.cost_micros DESC`
}

// DisapprovedAdsQuery finds ads blocked by policy review.
func DisapprovedAdsQuery() string {
	return `
            SELECT
                campaign.id,
                campaign.name,
                ad_group.id,
                ad_group.name,
                ad_group_ad.ad.id,
                ad_group_ad.policy_summary.approval_status,
                ad_group_ad.policy_summary.review_status
            FROM ad_group_ad
            WHERE ad_group_ad.policy_summary.approval_status = 'DISAPPROVED'`
}
