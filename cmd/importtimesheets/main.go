package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	client "skyraksys.com/hrm/client/v1"
	"skyraksys.com/hrm/utils"
)

// Imports weekly drafts from a CSV file through the API. Columns:
// projectId,taskId,weekStartDate,mon,tue,wed,thu,fri,sat,sun,description
func main() {
	baseURL := flag.String("url", "http://localhost:8090", "API base URL")
	file := flag.String("file", "", "CSV file to import")
	submit := flag.Bool("submit", false, "bulk-submit the saved drafts")
	flag.Parse()

	if *file == "" {
		log.Fatal("-file is required")
	}
	token := os.Getenv("HRM_TOKEN")
	if token == "" {
		log.Fatal("HRM_TOKEN must be set")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	records, err := utils.ParseCSV(f)
	if err != nil {
		log.Fatal(err)
	}
	if len(records) < 2 {
		log.Fatal("csv has no data rows")
	}

	rows := utils.Filter(records[1:], func(row []string) bool {
		return len(row) >= 10 && row[0] != ""
	})

	drafts := utils.Map(rows, func(row []string) client.TimesheetDraftDTO {
		return client.TimesheetDraftDTO{
			ProjectID:      row[0],
			TaskID:         row[1],
			WeekStartDate:  row[2],
			MondayHours:    hours(row[3]),
			TuesdayHours:   hours(row[4]),
			WednesdayHours: hours(row[5]),
			ThursdayHours:  hours(row[6]),
			FridayHours:    hours(row[7]),
			SaturdayHours:  hours(row[8]),
			SundayHours:    hours(row[9]),
			Description:    column(row, 10),
		}
	})

	api := client.NewHrmClient(*baseURL, token)

	result, err := api.Timesheets.BulkSave(drafts)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("saved: %d ok, %d failed of %d", result.Succeeded, result.Failed, result.Total)
	for _, item := range result.Items {
		if item.Error != nil {
			log.Printf("row %d: %s (%s)", item.Index+2, item.Error.Message, item.Error.Kind)
		}
	}

	if !*submit {
		return
	}

	var ids []string
	for _, item := range result.Items {
		if item.ID != nil {
			ids = append(ids, *item.ID)
		}
	}
	if len(ids) == 0 {
		log.Print("nothing to submit")
		return
	}

	submitted, err := api.Timesheets.BulkSubmit(ids)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("submitted: %d ok, %d failed of %d", submitted.Succeeded, submitted.Failed, submitted.Total)
}

func hours(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func column(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
