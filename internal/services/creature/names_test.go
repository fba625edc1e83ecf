package creature

import (
	"testing"

	mockdice "github.com/KirkDiggler/arena-bot/internal/dice/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRollName(t *testing.T) {
	tests := []struct {
		name   string
		kills  int
		expect func(o *mockdice.MockOracleMockRecorder)
		want   string
	}{
		{
			name:  "first creature is always a Python",
			kills: 0,
			expect: func(o *mockdice.MockOracleMockRecorder) {
				o.UniformInt(100, 999).Return(123, nil)
			},
			want: "Python#123",
		},
		{
			name:  "favoured prefix after kills",
			kills: 2,
			expect: func(o *mockdice.MockOracleMockRecorder) {
				gomock.InOrder(
					o.UniformInt(0, 2).Return(0, nil),
					o.UniformInt(100, 999).Return(999, nil),
				)
			},
			want: "Python#999",
		},
		{
			name:  "other prefix",
			kills: 1,
			expect: func(o *mockdice.MockOracleMockRecorder) {
				gomock.InOrder(
					o.UniformInt(0, 2).Return(2, nil),
					o.UniformInt(0, 2).Return(1, nil),
					o.UniformInt(100, 999).Return(100, nil),
				)
			},
			want: "Raiden#100",
		},
		{
			name:  "last prefix",
			kills: 5,
			expect: func(o *mockdice.MockOracleMockRecorder) {
				gomock.InOrder(
					o.UniformInt(0, 2).Return(1, nil),
					o.UniformInt(0, 2).Return(2, nil),
					o.UniformInt(100, 999).Return(500, nil),
				)
			},
			want: "Rinnees#500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			oracle := mockdice.NewMockOracle(ctrl)
			tt.expect(oracle.EXPECT())

			got, err := RollName(oracle, tt.kills)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
