package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelpower/usage-dashboard/services/dashboard/dataset"
)

func TestExportSelection(t *testing.T) {
	table, err := dataset.Load(strings.NewReader("Date,Room,Units_Consumed\n2024-01-05,R1,1\n2024-02-05,R2,2\n"))
	require.NoError(t, err)

	sel, err := exportSelection(table, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"R1", "R2"}, sel.Rooms)
	assert.Equal(t, []dataset.MonthKey{"2024-01", "2024-02"}, sel.Months)

	sel, err = exportSelection(table, []string{"R2"}, []string{"2024-02"})
	require.NoError(t, err)
	assert.Equal(t, []string{"R2"}, sel.Rooms)
	assert.Equal(t, []dataset.MonthKey{"2024-02"}, sel.Months)

	_, err = exportSelection(table, nil, []string{"Feb 2024"})
	assert.Error(t, err)
}
