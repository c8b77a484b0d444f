package extract

const sampleResult = `{
  "candidate": {
    "name": "Test User",
    "father_name": null,
    "roll_no": "123",
    "exam_year": "",
    "confidence": 0.95
  },
  "subjects": [
    {"name": "Math", "marks": {"obtained": 80, "max_marks": 100, "grade": "A", "confidence": 0.9}},
    {"name": "Physics", "marks": {"obtained": 71.5, "max_marks": 100, "grade": null, "confidence": 0.6}}
  ],
  "overall_result": "Pass",
  "issue_date": "2024-05-01",
  "average_confidence": 0.9
}`
