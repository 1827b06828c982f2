package services

// 分析コアは以下のファイルに分割されています：
//
// - analytics_core.go: AnalyticsService構造体、相関、線形回帰
// - analytics_math.go: 数学的ユーティリティ関数（平均、標準偏差、クランプ、列抽出）
// - analytics_anomaly.go: Zスコア異常検知（スパイク・ドロップ検出）
// - analytics_forecast.go: 線形予測とトレンド分解
// - analytics_rootcause.go: 特徴量重要度と根本原因分析
//
// AnalyticsService構造体はanalytics_core.goに定義されています。
// 各ファイルはAnalyticsServiceのメソッドとして実装されています。
