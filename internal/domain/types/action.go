package types

const (
	ActionUploadDataset    = "upload_dataset"
	ActionGetDataset       = "get_dataset"
	ActionComputeDashboard = "compute_dashboard"
	ActionExportDataset    = "export_dataset"
	ActionDeleteDataset    = "delete_dataset"
	ActionRenderPage       = "render_page"
	ActionLiveFilter       = "live_filter"

	ActionLoadDataset     = "load_dataset"
	ActionRenderChart     = "render_chart"
	ActionSweepSessions   = "sweep_sessions"
	ActionEvictDataset    = "evict_dataset"
	ActionPublishEvent    = "publish_event"
	ActionGenerateReport  = "generate_report"
	ActionWatchImportDir  = "watch_import_dir"
	ActionShutdown        = "graceful_shutdown"
	ActionExternalFailure = "external_service_failed"
)
