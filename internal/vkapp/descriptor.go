package vkapp

import (
	"github.com/vkngwrapper/core/core1_0"
)

// TextureBinding is a descriptor set exposing one texture to the fragment
// stage: the sampled image at binding 0 and its sampler at binding 1.
type TextureBinding struct {
	Layout core1_0.DescriptorSetLayout
	Pool   core1_0.DescriptorPool
	Set    core1_0.DescriptorSet
}

func (app *App) CreateTextureBinding(texture *Texture) (*TextureBinding, error) {
	binding := &TextureBinding{}

	var err error
	binding.Layout, _, err = app.device.CreateDescriptorSetLayout(nil, core1_0.DescriptorSetLayoutCreateInfo{
		Bindings: []core1_0.DescriptorSetLayoutBinding{
			{
				Binding:         0,
				DescriptorType:  core1_0.DescriptorTypeSampledImage,
				DescriptorCount: 1,

				StageFlags: core1_0.StageFragment,
			},
			{
				Binding:         1,
				DescriptorType:  core1_0.DescriptorTypeSampler,
				DescriptorCount: 1,

				StageFlags: core1_0.StageFragment,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	binding.Pool, _, err = app.device.CreateDescriptorPool(nil, core1_0.DescriptorPoolCreateInfo{
		MaxSets: 1,
		PoolSizes: []core1_0.DescriptorPoolSize{
			{
				Type:            core1_0.DescriptorTypeSampledImage,
				DescriptorCount: 1,
			},
			{
				Type:            core1_0.DescriptorTypeSampler,
				DescriptorCount: 1,
			},
		},
	})
	if err != nil {
		binding.Destroy()
		return nil, err
	}

	sets, _, err := app.device.AllocateDescriptorSets(core1_0.DescriptorSetAllocateInfo{
		DescriptorPool: binding.Pool,
		SetLayouts:     []core1_0.DescriptorSetLayout{binding.Layout},
	})
	if err != nil {
		binding.Destroy()
		return nil, err
	}
	binding.Set = sets[0]

	err = app.device.UpdateDescriptorSets([]core1_0.WriteDescriptorSet{
		{
			DstSet:          binding.Set,
			DstBinding:      0,
			DstArrayElement: 0,

			DescriptorType: core1_0.DescriptorTypeSampledImage,

			ImageInfo: []core1_0.DescriptorImageInfo{
				{
					ImageView:   texture.View,
					ImageLayout: core1_0.ImageLayoutShaderReadOnlyOptimal,
				},
			},
		},
		{
			DstSet:          binding.Set,
			DstBinding:      1,
			DstArrayElement: 0,

			DescriptorType: core1_0.DescriptorTypeSampler,

			ImageInfo: []core1_0.DescriptorImageInfo{
				{
					Sampler: texture.Sampler,
				},
			},
		},
	}, nil)
	if err != nil {
		binding.Destroy()
		return nil, err
	}

	return binding, nil
}

// Destroy frees the pool, which also frees the set.
func (b *TextureBinding) Destroy() {
	if b == nil {
		return
	}

	if b.Pool != nil {
		b.Pool.Destroy(nil)
		b.Pool = nil
	}

	if b.Layout != nil {
		b.Layout.Destroy(nil)
		b.Layout = nil
	}
}
