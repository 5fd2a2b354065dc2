package help

const ColdstartYAML = `# payscale-url-parser Quick Start

input:
  format: "CSV, or TSV when the header line contains a tab"
  url_column: "Auto-detected (URL, url, Page_URL, Link...) or set with --url-column"
  traffic_column: "Traffic by default; required unless --no-analysis"

commands:
  basic_parse: |
    payscale-url-parser parse urls.csv

  custom_columns: |
    payscale-url-parser parse --url-column Page --traffic-column Sessions urls.tsv

  quick_sample: |
    payscale-url-parser parse --sample 1000 --no-db urls.csv

  classify_one: |
    payscale-url-parser classify "https://www.payscale.com/research/US/Job=Software_Engineer/Salary"

  classify_stdin: |
    cut -d, -f1 urls.csv | payscale-url-parser classify --format json

  reaggregate: |
    payscale-url-parser analyze --top-n 50 output/<session-id>/parsed_data.csv

  history: |
    payscale-url-parser runs
    payscale-url-parser run --view top_jobs
    payscale-url-parser manifest 3
    payscale-url-parser delete 3

  metrics: |
    payscale-url-parser parse --metrics-file /var/lib/node_exporter/payscale.prom urls.csv

key_files:
  - "output/FIELDS.yaml (column and table reference)"
  - "output/index.yaml (all runs, newest first)"
  - "output/payscale-url-parser.db (run history)"
  - "output/<session-id>/parsed_data.csv (input rows plus classification)"
  - "output/<session-id>/manifest.yaml (stats and table list)"
  - "output/<session-id>/<view>.csv (one file per summary table)"

views:
  - by_section
  - by_category
  - by_metric_type
  - by_page_number
  - cost_of_living_by_state
  - research_by_country
  - top_employers
  - additional_employers
  - top_jobs

weights:
  - "Empty or non-numeric traffic cells count as rows but not as traffic"
  - "Thousands separators are ignored (1,200 = 1200)"
  - "Avg_Traffic = Total_Traffic / URL_Count, two decimals"

error_behavior:
  - "Missing URL or traffic column: fail before any row is read"
  - "Unclassifiable URLs: section and category other"
  - "Exit codes: 0=success, 1=runtime failure, 2=usage or column error"
`
