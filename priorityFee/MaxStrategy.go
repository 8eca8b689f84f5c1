package priorityFee

type MaxStrategy struct {
	IPriorityFeeStrategy
}

func (p *MaxStrategy) Calculate(samples []Sample) uint64 {
	runningMaxFee := uint64(0)
	for _, sample := range samples {
		if runningMaxFee < sample.PrioritizationFee {
			runningMaxFee = sample.PrioritizationFee
		}
	}
	return runningMaxFee
}

func StrategyFor(name StrategyName) IPriorityFeeStrategy {
	switch name {
	case StrategyMax:
		return &MaxStrategy{}
	default:
		return &AverageStrategy{}
	}
}
